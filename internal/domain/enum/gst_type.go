package enum

// GSTType selects how the GST amount of a purchase is split into components.
// Intra-state purchases split the tax equally between CGST and SGST;
// inter-state purchases carry the full amount as IGST.
type GSTType string

const (
	GSTTypeCGSTSGST GSTType = "cgst_sgst"
	GSTTypeIGST     GSTType = "igst"
)

// IsValid reports whether the GST type is a known value
func (t GSTType) IsValid() bool {
	return t == GSTTypeCGSTSGST || t == GSTTypeIGST
}

func (t GSTType) String() string {
	return string(t)
}
