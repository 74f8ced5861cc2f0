package dsl

// FieldType is the type a compiled bind value is coerced to.
type FieldType int

const (
	TypeText FieldType = iota
	TypeInteger
	TypeFloat
	TypeBool
	TypeCSVText
)

// FieldDef binds a DSL field name to a catalogue column, its type, and
// whether equality compiles as a LIKE-contains predicate. Introducing a
// new searchable column means adding an entry here — there is no
// reflective catalogue over the offerings table (spec §4.C invariant).
type FieldDef struct {
	Column string
	Type   FieldType
	Like   bool
}

// Allowlist is the fixed set of offering attributes the DSL can query.
var Allowlist = map[string]FieldDef{
	"type":       {Column: "product_type", Type: TypeText},
	"price":      {Column: "monthly_price", Type: TypeFloat},
	"cores":      {Column: "processor_cores", Type: TypeInteger},
	"memory":     {Column: "memory_gib", Type: TypeText, Like: true},
	"stock":      {Column: "stock_status", Type: TypeText},
	"country":    {Column: "datacenter_country", Type: TypeText},
	"visibility": {Column: "visibility", Type: TypeText},
	"currency":   {Column: "currency", Type: TypeText},
	"name":       {Column: "name", Type: TypeText, Like: true},
	"gpu":        {Column: "gpu_model", Type: TypeText, Like: true},
	"features":   {Column: "features", Type: TypeText, Like: true},
}
