package form

// Field names shared by the account schemas. These match the commerce
// platform's customer and address field names.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldCompany   = "company"
	FieldAddress1  = "address1"
	FieldAddress2  = "address2"
	FieldCity      = "city"
	FieldProvince  = "province"
	FieldZip       = "zip"
	FieldCountry   = "country"
)

// ProfileSchema describes the personal-info form: first and last name,
// email, and an optional phone number.
func ProfileSchema(loc Locale) Schema {
	return Schema{
		Name: "profile",
		Fields: []FieldDef{
			{Name: FieldFirstName, Label: "First name", Validate: Name("First name")},
			{Name: FieldLastName, Label: "Last name", Validate: Name("Last name")},
			{Name: FieldEmail, Label: "Email", Validate: Email()},
			{Name: FieldPhone, Label: "Phone number", Optional: true, Validate: Phone(), Transform: PhoneTransform(loc)},
		},
	}
}

// AddressSchema describes the address create/edit form. Company, phone, and
// the second address line are optional and are omitted from the payload when
// left empty.
func AddressSchema(loc Locale) Schema {
	return Schema{
		Name: "address",
		Fields: []FieldDef{
			{Name: FieldFirstName, Label: "First name", Validate: Name("First name")},
			{Name: FieldLastName, Label: "Last name", Validate: Name("Last name")},
			{Name: FieldPhone, Label: "Phone number", Optional: true, Validate: Phone(), Transform: PhoneTransform(loc)},
			{Name: FieldCompany, Label: "Company", Optional: true},
			{Name: FieldAddress1, Label: "Address line 1", Validate: AddressLine("Address line 1"), Transform: SanitizeText},
			{Name: FieldAddress2, Label: "Address line 2", Optional: true, Validate: Optional(AddressLine("Address line 2")), Transform: SanitizeText},
			{Name: FieldCity, Label: "City", Validate: Required("City")},
			{Name: FieldProvince, Label: "State", Validate: Required("State")},
			{Name: FieldZip, Label: "Pincode", Validate: PostalCode("Pincode", loc)},
			{Name: FieldCountry, Label: "Country", Validate: Required("Country")},
		},
	}
}

// AddressDefaults seeds a fresh address form: country from the locale,
// contact fields from the customer record when known.
func AddressDefaults(loc Locale, firstName, lastName, phone string) map[string]string {
	return map[string]string{
		FieldFirstName: firstName,
		FieldLastName:  lastName,
		FieldPhone:     phone,
		FieldCountry:   loc.Country,
	}
}
