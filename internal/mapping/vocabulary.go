package mapping

// Canonical target fields that mapped data must conform to. Downstream
// persistence and review layers only understand these names.
const (
	FieldDocumentNumber  = "document_number"
	FieldDocumentDate    = "document_date"
	FieldDueDate         = "due_date"
	FieldVendorName      = "vendor_name"
	FieldVendorAddress   = "vendor_address"
	FieldCustomerName    = "customer_name"
	FieldCustomerAddress = "customer_address"
	FieldTotalAmount     = "total_amount"
	FieldSubtotal        = "subtotal"
	FieldTaxAmount       = "tax_amount"
	FieldCurrency        = "currency"
	FieldPaymentTerms    = "payment_terms"
	FieldReferenceNumber = "reference_number"
	FieldShipmentNumber  = "shipment_number"
	FieldGrossWeight     = "gross_weight"
)

// CanonicalFields is the fixed reference vocabulary, in stable order.
var CanonicalFields = []string{
	FieldDocumentNumber,
	FieldDocumentDate,
	FieldDueDate,
	FieldVendorName,
	FieldVendorAddress,
	FieldCustomerName,
	FieldCustomerAddress,
	FieldTotalAmount,
	FieldSubtotal,
	FieldTaxAmount,
	FieldCurrency,
	FieldPaymentTerms,
	FieldReferenceNumber,
	FieldShipmentNumber,
	FieldGrossWeight,
}

// RequiredFields are the canonical fields a complete record must carry.
var RequiredFields = []string{
	FieldDocumentNumber,
	FieldDocumentDate,
	FieldVendorName,
	FieldTotalAmount,
}

// OptionalFields are canonical fields that enrich a record but are not
// demanded of every document. Line items are evaluated separately.
var OptionalFields = []string{
	FieldVendorAddress,
	FieldCustomerName,
	FieldDueDate,
	FieldCurrency,
}

var canonicalSet = func() map[string]bool {
	set := make(map[string]bool, len(CanonicalFields))
	for _, f := range CanonicalFields {
		set[f] = true
	}
	return set
}()

// IsCanonical reports whether name belongs to the reference vocabulary.
func IsCanonical(name string) bool {
	return canonicalSet[name]
}
