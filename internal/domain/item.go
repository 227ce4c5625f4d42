package domain

// Item is a schemaless record as held by the key-value store. Attribute names
// match the dynamodbav tags of the typed records.
type Item map[string]interface{}

// Filter restricts a scan to items whose attributes equal the given values.
type Filter map[string]interface{}

// Query selects items by equality on an indexed attribute.
type Query struct {
	IndexName string      `json:"indexName,omitempty"`
	KeyName   string      `json:"keyName" validate:"required"`
	KeyValue  interface{} `json:"keyValue" validate:"required"`
}

// Secondary indexes used by Query.
const (
	IndexUsername  = "username-index"
	IndexNIC       = "nic-index"
	IndexEmail     = "email-index"
	IndexCouncilID = "council_id-index"
)
