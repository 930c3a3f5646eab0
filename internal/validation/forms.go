package validation

import (
	"time"

	"github.com/stwalsh4118/portfolio/internal/models"
)

// Kind identifies one of the dashboard forms.
type Kind string

const (
	KindAddProperty    Kind = "add_property"
	KindDocumentUpload Kind = "document_upload"
	KindDocumentEdit   Kind = "document_edit"
	KindInsurance      Kind = "insurance"
	KindRoofAssessment Kind = "roof_assessment"
)

// Form is a fixed record of fields that can be validated one at a time.
type Form[F ~string] interface {
	Fields() []F
	ValidateField(field F, now time.Time) string
}

// Errors maps a field to its message. Valid fields are absent.
type Errors[F ~string] map[F]string

// Strings converts the errors to a plain map for API responses.
func (e Errors[F]) Strings() map[string]string {
	out := make(map[string]string, len(e))
	for k, v := range e {
		out[string(k)] = v
	}
	return out
}

// Validate runs every declared field of form and collects the failures.
func Validate[F ~string](form Form[F], now time.Time) Errors[F] {
	errs := Errors[F]{}
	for _, field := range form.Fields() {
		if msg := form.ValidateField(field, now); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

// AddPropertyField enumerates the add-property form fields.
type AddPropertyField string

const (
	FieldAddress         AddPropertyField = "address"
	FieldCity            AddPropertyField = "city"
	FieldState           AddPropertyField = "state"
	FieldZipCode         AddPropertyField = "zipCode"
	FieldPropertyName    AddPropertyField = "propertyName"
	FieldPropertyType    AddPropertyField = "propertyType"
	FieldBuildYear       AddPropertyField = "buildYear"
	FieldRoofType        AddPropertyField = "roofType"
	FieldNumberOfStories AddPropertyField = "numberOfStories"
	FieldSquareFootage   AddPropertyField = "squareFootage"
)

// Options offered by the add-property selects.
var (
	PropertyTypeOptions = []string{"single-family", "multi-family", "apartment", "condo"}
	RoofTypeOptions     = []string{"asphalt", "metal", "tile", "slate"}
)

var addPropertyFields = []AddPropertyField{
	FieldAddress, FieldCity, FieldState, FieldZipCode, FieldPropertyName,
	FieldPropertyType, FieldBuildYear, FieldRoofType, FieldNumberOfStories, FieldSquareFootage,
}

// AddPropertyForm is the "Add Property" modal.
type AddPropertyForm struct {
	Address         string `json:"address"`
	City            string `json:"city"`
	State           string `json:"state"`
	ZipCode         string `json:"zipCode"`
	PropertyName    string `json:"propertyName"`
	PropertyType    string `json:"propertyType"`
	BuildYear       string `json:"buildYear"`
	RoofType        string `json:"roofType"`
	NumberOfStories string `json:"numberOfStories"`
	SquareFootage   string `json:"squareFootage"`
}

// Fields implements Form.
func (AddPropertyForm) Fields() []AddPropertyField {
	return addPropertyFields
}

// ValidateField implements Form.
func (f AddPropertyForm) ValidateField(field AddPropertyField, now time.Time) string {
	switch field {
	case FieldAddress:
		return Required("Address", f.Address)
	case FieldCity:
		return Required("City", f.City)
	case FieldState:
		return Required("State", f.State)
	case FieldZipCode:
		return Required("ZIP code", f.ZipCode)
	case FieldPropertyName:
		return Required("Property name", f.PropertyName)
	case FieldPropertyType:
		return OneOf("Property type", f.PropertyType, PropertyTypeOptions)
	case FieldBuildYear:
		return BuildYear(f.BuildYear, now)
	case FieldRoofType:
		return OneOf("Roof type", f.RoofType, RoofTypeOptions)
	case FieldNumberOfStories:
		return NumberOfStories(f.NumberOfStories)
	case FieldSquareFootage:
		return SquareFootage(f.SquareFootage)
	}
	return ""
}

// Address is a resolved address picked from the lookup suggestions.
type Address struct {
	FullAddress string `json:"fullAddress"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
}

// SelectAddress copies a picked suggestion into the form.
func (f *AddPropertyForm) SelectAddress(a Address) {
	f.Address = a.FullAddress
	f.City = a.City
	f.State = a.State
	f.ZipCode = a.ZipCode
}

// AddressFields are the fields SelectAddress overwrites.
var AddressFields = []AddPropertyField{FieldCity, FieldState, FieldZipCode}

// DocumentField enumerates the document upload and edit form fields.
type DocumentField string

const (
	FieldFile      DocumentField = "file"
	FieldName      DocumentField = "name"
	FieldCategory  DocumentField = "category"
	FieldStartDate DocumentField = "startDate"
	FieldEndDate   DocumentField = "endDate"
)

// CategoryOptions are the document categories offered by the upload form.
var CategoryOptions = []string{
	string(models.CategoryInsurance),
	string(models.CategoryLease),
	string(models.CategoryInspection),
	string(models.CategoryPermit),
	string(models.CategoryOther),
}

// FileInfo is the metadata of a picked file. Bytes are never sent.
type FileInfo struct {
	Name      string `json:"name"`
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `json:"sizeBytes"`
}

// DocumentUploadForm is the "Upload Document" modal.
type DocumentUploadForm struct {
	File      *FileInfo `json:"file"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Notes     string    `json:"notes"`
}

// Fields implements Form.
func (DocumentUploadForm) Fields() []DocumentField {
	return []DocumentField{FieldFile, FieldName, FieldCategory, FieldStartDate, FieldEndDate}
}

// ValidateField implements Form.
func (f DocumentUploadForm) ValidateField(field DocumentField, _ time.Time) string {
	switch field {
	case FieldFile:
		if f.File == nil || f.File.Name == "" {
			return MsgFileRequired
		}
	case FieldName:
		return Required("Document name", f.Name)
	case FieldCategory:
		return OneOf("Category", f.Category, CategoryOptions)
	case FieldStartDate:
		return Selected("Start date", f.StartDate)
	case FieldEndDate:
		return EndDate(f.StartDate, f.EndDate)
	}
	return ""
}

// DocumentEditForm is the edit dialog of an existing document card.
type DocumentEditForm struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Notes     string `json:"notes"`
}

// Fields implements Form.
func (DocumentEditForm) Fields() []DocumentField {
	return []DocumentField{FieldName, FieldStartDate, FieldEndDate}
}

// ValidateField implements Form.
func (f DocumentEditForm) ValidateField(field DocumentField, _ time.Time) string {
	switch field {
	case FieldName:
		return Required("Title", f.Name)
	case FieldStartDate:
		return Selected("Start date", f.StartDate)
	case FieldEndDate:
		return EndDate(f.StartDate, f.EndDate)
	}
	return ""
}

// InsuranceField enumerates the insurance edit form fields.
type InsuranceField string

const (
	FieldTypes         InsuranceField = "types"
	FieldCarrier       InsuranceField = "carrier"
	FieldPolicyNumber  InsuranceField = "policyNumber"
	FieldAnnualPremium InsuranceField = "annualPremium"
	FieldRenewalDate   InsuranceField = "renewalDate"
)

// InsuranceTypeOptions are the coverage checkboxes offered by the form.
var InsuranceTypeOptions = []string{
	"dwelling", "liability", "flood", "wind", "umbrella", "construction", "condominium", "earthquake", "other",
}

// InsuranceForm is the "Edit Details" dialog of the insurance tab.
type InsuranceForm struct {
	Types            []string `json:"types"`
	Carrier          string   `json:"carrier"`
	PolicyNumber     string   `json:"policyNumber"`
	PaymentFrequency string   `json:"paymentFrequency"`
	AnnualPremium    string   `json:"annualPremium"`
	RenewalDate      string   `json:"renewalDate"`
}

// Fields implements Form.
func (InsuranceForm) Fields() []InsuranceField {
	return []InsuranceField{FieldTypes, FieldCarrier, FieldPolicyNumber, FieldAnnualPremium, FieldRenewalDate}
}

// ValidateField implements Form.
func (f InsuranceForm) ValidateField(field InsuranceField, _ time.Time) string {
	switch field {
	case FieldTypes:
		return InsuranceTypes(f.Types)
	case FieldCarrier:
		return Required("Insurance carrier", f.Carrier)
	case FieldPolicyNumber:
		return Required("Policy number", f.PolicyNumber)
	case FieldAnnualPremium:
		return AnnualPremium(f.AnnualPremium)
	case FieldRenewalDate:
		return DateValue("Renewal date", f.RenewalDate)
	}
	return ""
}

// ToggleType adds or removes a coverage type, matching the checkbox behaviour.
func (f *InsuranceForm) ToggleType(t string) {
	for i, existing := range f.Types {
		if existing == t {
			f.Types = append(f.Types[:i:i], f.Types[i+1:]...)
			return
		}
	}
	f.Types = append(f.Types, t)
}

// RoofAssessmentField enumerates the roof assessment request fields.
type RoofAssessmentField string

const (
	FieldPreferredDate   RoofAssessmentField = "preferredDate"
	FieldAlternativeDate RoofAssessmentField = "alternativeDate"
	FieldContactPhone    RoofAssessmentField = "contactPhone"
)

// RoofAssessmentForm is the "Request Roof Assessment" modal.
type RoofAssessmentForm struct {
	PreferredDate   string `json:"preferredDate"`
	AlternativeDate string `json:"alternativeDate"`
	Notes           string `json:"notes"`
	ContactPhone    string `json:"contactPhone"`
}

// Fields implements Form.
func (RoofAssessmentForm) Fields() []RoofAssessmentField {
	return []RoofAssessmentField{FieldPreferredDate, FieldAlternativeDate, FieldContactPhone}
}

// ValidateField implements Form.
func (f RoofAssessmentForm) ValidateField(field RoofAssessmentField, now time.Time) string {
	switch field {
	case FieldPreferredDate:
		if f.PreferredDate == "" {
			return RequiredMessage("Preferred date")
		}
		return FutureDate(f.PreferredDate, now)
	case FieldAlternativeDate:
		return FutureDate(f.AlternativeDate, now)
	case FieldContactPhone:
		return Phone("Contact phone", f.ContactPhone)
	}
	return ""
}
