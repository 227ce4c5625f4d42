package demo

import (
	"strings"

	"github.com/mc-parking-api/internal/domain"
)

// registry stands in for the national identity service until MOSIP is wired.
var registry = map[string]domain.DemoUserData{
	"199012345678": {
		NIC:         "199012345678",
		FullName:    "Kasun Jayawardena",
		DateOfBirth: "1990-05-03",
		Gender:      "male",
		Address:     "12 Temple Road, Maharagama",
		Mobile:      "+94771234567",
	},
	"856781234V": {
		NIC:         "856781234V",
		FullName:    "Dilani Wickramasinghe",
		DateOfBirth: "1985-03-08",
		Gender:      "female",
		Address:     "45/2 Lake Drive, Kandy",
		Mobile:      "+94712345678",
	},
	"200156789012": {
		NIC:         "200156789012",
		FullName:    "Tharindu Senanayake",
		DateOfBirth: "2001-02-14",
		Gender:      "male",
		Address:     "7 Beach Road, Galle",
		Mobile:      "+94761234567",
	},
	"927654321X": {
		NIC:         "927654321X",
		FullName:    "Shanika Rathnayake",
		DateOfBirth: "1992-09-17",
		Gender:      "female",
		Address:     "88 Main Street, Negombo",
		Mobile:      "+94701234567",
	},
}

func normalizeNIC(nic string) string {
	return strings.ToUpper(strings.TrimSpace(nic))
}

func lookup(nic string) (domain.DemoUserData, bool) {
	u, ok := registry[normalizeNIC(nic)]
	return u, ok
}
