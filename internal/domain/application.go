package domain

// Column names as they appear on uploads, JSON payloads, and the model file.
const (
	ColGender            = "Gender"
	ColMarried           = "Married"
	ColDependents        = "Dependents"
	ColEducation         = "Education"
	ColSelfEmployed      = "Self_Employed"
	ColPropertyArea      = "Property_Area"
	ColApplicantIncome   = "ApplicantIncome"
	ColCoapplicantIncome = "CoapplicantIncome"
	ColLoanAmount        = "LoanAmount"

	ColLoanAmountLog = "LoanAmount_log"
	ColInterestRate  = "InterestRate"
)

// Unknown is the sentinel categorical value substituted for blank or
// missing cells. Every categorical encoder downstream must accept it.
const Unknown = "Unknown"

var requiredColumns = []string{
	ColGender,
	ColMarried,
	ColDependents,
	ColEducation,
	ColSelfEmployed,
	ColPropertyArea,
	ColApplicantIncome,
	ColCoapplicantIncome,
	ColLoanAmount,
}

var categoricalColumns = []string{
	ColGender,
	ColMarried,
	ColDependents,
	ColEducation,
	ColSelfEmployed,
	ColPropertyArea,
}

var numericColumns = []string{
	ColApplicantIncome,
	ColCoapplicantIncome,
	ColLoanAmount,
}

// CategoricalValues enumerates the legal values per categorical column.
// Unknown is always legal.
var CategoricalValues = map[string][]string{
	ColGender:       {"Male", "Female", Unknown},
	ColMarried:      {"Yes", "No", Unknown},
	ColDependents:   {"0", "1", "2", "3+", Unknown},
	ColEducation:    {"Graduate", "Not Graduate", Unknown},
	ColSelfEmployed: {"Yes", "No", Unknown},
	ColPropertyArea: {"Urban", "Semiurban", "Rural", Unknown},
}

// RequiredColumns returns the ordered column set every batch must carry.
func RequiredColumns() []string {
	out := make([]string, len(requiredColumns))
	copy(out, requiredColumns)
	return out
}

// CategoricalColumns returns the six categorical column names in order.
func CategoricalColumns() []string {
	out := make([]string, len(categoricalColumns))
	copy(out, categoricalColumns)
	return out
}

// NumericColumns returns the three numeric column names in order.
func NumericColumns() []string {
	out := make([]string, len(numericColumns))
	copy(out, numericColumns)
	return out
}

// RawRow is one uploaded row keyed by column name, untyped. It only exists
// at the normalization boundary; everything past normalization uses
// LoanApplication.
type RawRow map[string]string

// LoanApplication is a single validated loan request.
type LoanApplication struct {
	Gender            string  `json:"Gender"`
	Married           string  `json:"Married"`
	Dependents        string  `json:"Dependents"`
	Education         string  `json:"Education"`
	SelfEmployed      string  `json:"Self_Employed"`
	PropertyArea      string  `json:"Property_Area"`
	ApplicantIncome   float64 `json:"ApplicantIncome"`
	CoapplicantIncome float64 `json:"CoapplicantIncome"`
	LoanAmount        float64 `json:"LoanAmount"`
}

// Categorical returns the value of a categorical column by name.
func (a LoanApplication) Categorical(column string) (string, bool) {
	switch column {
	case ColGender:
		return a.Gender, true
	case ColMarried:
		return a.Married, true
	case ColDependents:
		return a.Dependents, true
	case ColEducation:
		return a.Education, true
	case ColSelfEmployed:
		return a.SelfEmployed, true
	case ColPropertyArea:
		return a.PropertyArea, true
	default:
		return "", false
	}
}

// FeatureRow is a LoanApplication with model-input features attached. It is
// derived once and never mutated afterwards.
type FeatureRow struct {
	LoanApplication
	LoanAmountLog float64 `json:"LoanAmount_log"`
	InterestRate  float64 `json:"InterestRate"`
}

// Numeric returns the value of a numeric model-input column by name.
func (f FeatureRow) Numeric(column string) (float64, bool) {
	switch column {
	case ColApplicantIncome:
		return f.ApplicantIncome, true
	case ColCoapplicantIncome:
		return f.CoapplicantIncome, true
	case ColLoanAmount:
		return f.LoanAmount, true
	case ColLoanAmountLog:
		return f.LoanAmountLog, true
	case ColInterestRate:
		return f.InterestRate, true
	default:
		return 0, false
	}
}

// ScoredRow is the enriched output returned to callers: the original fields
// plus the classifier verdict.
type ScoredRow struct {
	LoanApplication
	Prediction  int     `json:"prediction"`
	Probability float64 `json:"probability"`
}
