package doccheck

// CellRequirement names a worksheet cell that must be filled in.
// Row and Col are 1-indexed, matching the coordinates printed on the
// purchase-order template handed to clients and agencies.
type CellRequirement struct {
	Row   int
	Col   int
	Label string
}

// SpreadsheetTemplate is the fixed contract between the intake pipeline and
// the purchase-order workbook template. It is not runtime configuration.
type SpreadsheetTemplate struct {
	Worksheet string
	Cells     []CellRequirement
}

// DefaultSpreadsheetTemplate maps the current purchase-order workbook layout.
var DefaultSpreadsheetTemplate = SpreadsheetTemplate{
	Worksheet: "ORDEN DE COMPRA",
	Cells: []CellRequirement{
		{Row: 4, Col: 3, Label: "NIT"},
		{Row: 5, Col: 3, Label: "Razón Social"},
		{Row: 6, Col: 3, Label: "Dirección"},
		{Row: 7, Col: 3, Label: "Teléfono"},
		{Row: 8, Col: 3, Label: "Ciudad"},
		{Row: 10, Col: 3, Label: "Número de Orden"},
		{Row: 11, Col: 3, Label: "Fecha"},
		{Row: 13, Col: 3, Label: "Valor Total"},
		{Row: 14, Col: 3, Label: "Moneda"},
		{Row: 15, Col: 3, Label: "Forma de Pago"},
		{Row: 17, Col: 3, Label: "Correo Electrónico"},
	},
}

// SignatureZone describes where a handwritten signature is expected on the
// purchase-order PDF. The zones are carried for reference only: no validator
// reads them, and signature presence is attested manually by the user.
type SignatureZone struct {
	Page           int
	X1, Y1, X2, Y2 float64
}

// PDFTemplate is the fixed contract for the purchase-order PDF document.
type PDFTemplate struct {
	RequiredLabels []string
	SignatureZones []SignatureZone
}

// DefaultPDFTemplate matches the current purchase-order PDF layout.
var DefaultPDFTemplate = PDFTemplate{
	RequiredLabels: []string{
		"ORDEN DE COMPRA",
		"NIT",
		"PROVEEDOR",
		"FECHA",
		"VALOR TOTAL",
		"CONDICIONES DE PAGO",
		"FIRMA AUTORIZADA",
	},
	SignatureZones: []SignatureZone{
		{Page: 1, X1: 72, Y1: 120, X2: 260, Y2: 180},
		{Page: 1, X1: 330, Y1: 120, X2: 520, Y2: 180},
	},
}
