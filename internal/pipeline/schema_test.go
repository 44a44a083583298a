package pipeline

import (
	"reflect"
	"testing"

	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/domain"
)

func TestMissingColumnsReportsEveryAbsentColumn(t *testing.T) {
	headers := []string{
		domain.ColGender,
		domain.ColMarried,
		domain.ColDependents,
		domain.ColEducation,
		domain.ColSelfEmployed,
		domain.ColApplicantIncome,
	}

	missing := MissingColumns(headers)
	want := []string{domain.ColPropertyArea, domain.ColCoapplicantIncome, domain.ColLoanAmount}
	if !reflect.DeepEqual(missing, want) {
		t.Fatalf("expected missing %v, got %v", want, missing)
	}
}

func TestMissingColumnsEmptyWhenAllPresent(t *testing.T) {
	if missing := MissingColumns(domain.RequiredColumns()); len(missing) != 0 {
		t.Fatalf("expected no missing columns, got %v", missing)
	}
}

func TestValidateRecordAcceptsUnknownCategory(t *testing.T) {
	app := validApplication()
	app.SelfEmployed = domain.Unknown

	if err := ValidateRecord(app); err != nil {
		t.Fatalf("Unknown must be a legal categorical value, got %v", err)
	}
}

func TestValidateRecordRejectsBadCategory(t *testing.T) {
	app := validApplication()
	app.PropertyArea = "Suburban"

	if err := ValidateRecord(app); err == nil {
		t.Fatal("expected error for out-of-domain category")
	}
}

func TestValidateRecordNumericConstraints(t *testing.T) {
	app := validApplication()
	app.LoanAmount = 0
	if err := ValidateRecord(app); err == nil {
		t.Fatal("expected error for zero loan amount")
	}

	app = validApplication()
	app.ApplicantIncome = -1
	if err := ValidateRecord(app); err == nil {
		t.Fatal("expected error for negative applicant income")
	}

	app = validApplication()
	app.CoapplicantIncome = -0.5
	if err := ValidateRecord(app); err == nil {
		t.Fatal("expected error for negative coapplicant income")
	}
}

func validApplication() domain.LoanApplication {
	return domain.LoanApplication{
		Gender:            "Male",
		Married:           "Yes",
		Dependents:        "0",
		Education:         "Graduate",
		SelfEmployed:      "No",
		PropertyArea:      "Urban",
		ApplicantIncome:   5000,
		CoapplicantIncome: 2000,
		LoanAmount:        200000,
	}
}
