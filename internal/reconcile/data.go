package reconcile

// Normalized column names shared by the Smart Brake parts and the EP List.
const (
	ColComponentID = "Component_ID"
	ColSymbol      = "Symbol"
	ColC           = "C"
	ColAA          = "AA"
)

// Raw header labels as they appear in the uploaded workbooks.
var SmartBrakeRenames = map[string]string{
	"Component ID": ColComponentID,
	"Symbol":       ColSymbol,
	"C":            ColC,
}

var EPListRenames = map[string]string{
	"DRAWING NUM.": ColComponentID,
	"REF.":         ColSymbol,
	"AA":           ColAA,
}

var (
	sourceRequiredColumns    = []string{ColComponentID, ColSymbol, ColC}
	referenceRequiredColumns = []string{ColComponentID, ColSymbol, ColAA}
)

// Field tags a discrepancy with the check that flagged it.
type Field string

const (
	FieldNoMatch      Field = "No Match Found in EP List"
	FieldCvsAA        Field = "C vs AA"
	FieldUnrecognized Field = "Unrecognized C Value"
)

// C flag values and the AA value each one must agree with.
const (
	FlagDash = "-"
	FlagS    = "S"
)

var cFlagMapping = map[string]int{
	FlagDash: 1,
	FlagS:    0,
}

// Key is the (Component_ID, Symbol) pair used to match parts against the EP List.
type Key struct {
	ComponentID string
	Symbol      string
}

// SourceRecord is one row of either Smart Brake part.
type SourceRecord struct {
	ComponentID string
	Symbol      string
	C           string
	HasC        bool
}

func (s SourceRecord) Key() Key {
	return Key{ComponentID: s.ComponentID, Symbol: s.Symbol}
}

// ReferenceRecord is one row of the EP List.
type ReferenceRecord struct {
	ComponentID string
	Symbol      string
	AA          Value
	Row         int
}

func (r ReferenceRecord) Key() Key {
	return Key{ComponentID: r.ComponentID, Symbol: r.Symbol}
}

// CombinedRecord is a SourceRecord after concatenation, carrying the mapped C flag.
type CombinedRecord struct {
	SourceRecord
	CMapped  int
	IsMapped bool
}

// JoinedRecord is a CombinedRecord with the AA of its EP List match, if any.
type JoinedRecord struct {
	CombinedRecord
	AA      Value
	Matched bool
}

// Discrepancy is one row of the validation report.
type Discrepancy struct {
	ComponentID string `json:"Component_ID" yaml:"Component_ID"`
	Symbol      string `json:"Symbol" yaml:"Symbol"`
	Field       Field  `json:"Field" yaml:"Field"`
	FileC       string `json:"File_C" yaml:"File_C"`
	EPAA        string `json:"EP_AA" yaml:"EP_AA"`
}

// Stats describes the size of one reconciliation run.
type Stats struct {
	SourceRows    int `json:"source_rows" yaml:"source_rows"`
	ReferenceRows int `json:"reference_rows" yaml:"reference_rows"`
	JoinedRows    int `json:"joined_rows" yaml:"joined_rows"`
}
