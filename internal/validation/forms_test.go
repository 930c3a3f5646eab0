package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddPropertyForm() AddPropertyForm {
	return AddPropertyForm{
		Address:         "3806 Sweetbriar Ln",
		City:            "Lincoln",
		State:           "NE",
		ZipCode:         "68516",
		PropertyName:    "Sweetbriar Duplex",
		PropertyType:    "multi-family",
		BuildYear:       "1978",
		RoofType:        "asphalt",
		NumberOfStories: "2",
		SquareFootage:   "2400",
	}
}

func TestAddPropertyForm_Validate(t *testing.T) {
	t.Run("valid form", func(t *testing.T) {
		errs := Validate[AddPropertyField](validAddPropertyForm(), fixedNow)
		assert.Empty(t, errs)
	})

	t.Run("empty form reports every field", func(t *testing.T) {
		errs := Validate[AddPropertyField](AddPropertyForm{}, fixedNow)
		require.Len(t, errs, len(addPropertyFields))
		assert.Equal(t, "Address is required", errs[FieldAddress])
		assert.Equal(t, "City is required", errs[FieldCity])
		assert.Equal(t, "State is required", errs[FieldState])
		assert.Equal(t, "ZIP code is required", errs[FieldZipCode])
		assert.Equal(t, "Property name is required", errs[FieldPropertyName])
		assert.Equal(t, "Property type is required", errs[FieldPropertyType])
		assert.Equal(t, "Build year is required", errs[FieldBuildYear])
		assert.Equal(t, "Roof type is required", errs[FieldRoofType])
		assert.Equal(t, "Number of stories is required", errs[FieldNumberOfStories])
		assert.Equal(t, "Square footage is required", errs[FieldSquareFootage])
	})

	t.Run("strings map uses wire names", func(t *testing.T) {
		form := validAddPropertyForm()
		form.ZipCode = ""
		errs := Validate[AddPropertyField](form, fixedNow).Strings()
		assert.Equal(t, map[string]string{"zipCode": "ZIP code is required"}, errs)
	})
}

func TestAddPropertyForm_SelectAddress(t *testing.T) {
	var form AddPropertyForm
	form.SelectAddress(Address{FullAddress: "742 Evergreen Terrace", City: "Springfield", State: "IL", ZipCode: "62701"})

	assert.Equal(t, "742 Evergreen Terrace", form.Address)
	assert.Equal(t, "Springfield", form.City)
	assert.Equal(t, "IL", form.State)
	assert.Equal(t, "62701", form.ZipCode)
}

func TestDocumentUploadForm_Validate(t *testing.T) {
	errs := Validate[DocumentField](DocumentUploadForm{}, fixedNow)
	assert.Equal(t, MsgFileRequired, errs[FieldFile])
	assert.Equal(t, "Document name is required", errs[FieldName])
	assert.Equal(t, "Category is required", errs[FieldCategory])
	assert.Equal(t, "Start date is required", errs[FieldStartDate])
	assert.Equal(t, "End date is required", errs[FieldEndDate])

	form := DocumentUploadForm{
		File:      &FileInfo{Name: "policy.pdf", MimeType: "application/pdf", SizeBytes: 2048},
		Name:      "Policy",
		Category:  "insurance",
		StartDate: "2024-02-01",
		EndDate:   "2024-01-31",
	}
	errs = Validate[DocumentField](form, fixedNow)
	assert.Equal(t, Errors[DocumentField]{FieldEndDate: MsgEndBeforeStart}, errs)

	form.EndDate = "2024-03-01"
	assert.Empty(t, Validate[DocumentField](form, fixedNow))
}

func TestDocumentEditForm_Validate(t *testing.T) {
	errs := Validate[DocumentField](DocumentEditForm{Name: " ", StartDate: "2024-01-01", EndDate: "2023-01-01"}, fixedNow)
	assert.Equal(t, "Title is required", errs[FieldName])
	assert.Equal(t, MsgEndBeforeStart, errs[FieldEndDate])
	assert.NotContains(t, errs, FieldStartDate)
}

func TestInsuranceForm_Validate(t *testing.T) {
	form := InsuranceForm{AnnualPremium: "lots"}
	errs := Validate[InsuranceField](form, fixedNow)
	assert.Equal(t, MsgNoInsuranceType, errs[FieldTypes])
	assert.Equal(t, "Insurance carrier is required", errs[FieldCarrier])
	assert.Equal(t, "Policy number is required", errs[FieldPolicyNumber])
	assert.Equal(t, MsgInvalidPremium, errs[FieldAnnualPremium])
	assert.Equal(t, "Renewal date is required", errs[FieldRenewalDate])
}

func TestForms_RejectUnofferedOptions(t *testing.T) {
	form := validAddPropertyForm()
	form.PropertyType = "townhouse"
	form.RoofType = "thatch"
	assert.Equal(t, Errors[AddPropertyField]{
		FieldPropertyType: "Please select a valid property type",
		FieldRoofType:     "Please select a valid roof type",
	}, Validate[AddPropertyField](form, fixedNow))

	upload := DocumentUploadForm{
		File:      &FileInfo{Name: "policy.pdf", MimeType: "application/pdf", SizeBytes: 2048},
		Name:      "Policy",
		Category:  "bogus",
		StartDate: "2024-02-01",
		EndDate:   "2024-03-01",
	}
	assert.Equal(t, Errors[DocumentField]{FieldCategory: "Please select a valid category"}, Validate[DocumentField](upload, fixedNow))
}

func TestInsuranceForm_RenewalDateMustParse(t *testing.T) {
	form := InsuranceForm{
		Types:         []string{"dwelling"},
		Carrier:       "Prairie Mutual",
		PolicyNumber:  "PM-778",
		AnnualPremium: "1200",
		RenewalDate:   "sometime in March",
	}
	assert.Equal(t, Errors[InsuranceField]{FieldRenewalDate: MsgInvalidDate}, Validate[InsuranceField](form, fixedNow))

	form.RenewalDate = "2027-03-01"
	assert.Empty(t, Validate[InsuranceField](form, fixedNow))
}

func TestInsuranceForm_ToggleType(t *testing.T) {
	form := InsuranceForm{Types: []string{"dwelling", "liability"}}
	form.ToggleType("dwelling")
	assert.Equal(t, []string{"liability"}, form.Types)
	form.ToggleType("flood")
	assert.Equal(t, []string{"liability", "flood"}, form.Types)
}

func TestRoofAssessmentForm_Validate(t *testing.T) {
	errs := Validate[RoofAssessmentField](RoofAssessmentForm{AlternativeDate: "2020-01-01", ContactPhone: "12345"}, fixedNow)
	assert.Equal(t, "Preferred date is required", errs[FieldPreferredDate])
	assert.Equal(t, MsgDateInPast, errs[FieldAlternativeDate])
	assert.Equal(t, MsgInvalidPhone, errs[FieldContactPhone])

	ok := RoofAssessmentForm{PreferredDate: "2026-11-02", ContactPhone: "+1 (555) 123-4567"}
	assert.Empty(t, Validate[RoofAssessmentField](ok, fixedNow))
}
