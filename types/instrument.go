package types

// InstrumentType identifies the kind of instrument to generate.
type InstrumentType string

// Supported instrument types. The compute service recognizes others
// (digamsa, rasivalaya, ...) but only these two are generatable today.
const (
	InstrumentSamrat InstrumentType = "samrat"
	InstrumentRama   InstrumentType = "rama"
)

// Valid reports whether the instrument type is one the compute service
// can generate.
func (t InstrumentType) Valid() bool {
	return t == InstrumentSamrat || t == InstrumentRama
}

// InstrumentTypes returns the generatable instrument types in display order.
func InstrumentTypes() []InstrumentType {
	return []InstrumentType{InstrumentSamrat, InstrumentRama}
}

// ExportFormat identifies a CAD/document export format.
type ExportFormat string

// Export formats produced by the compute service.
const (
	ExportDXF  ExportFormat = "dxf"
	ExportSTL  ExportFormat = "stl"
	ExportGLTF ExportFormat = "gltf"
	ExportSTEP ExportFormat = "step"
	ExportPDF  ExportFormat = "pdf"
	ExportSVG  ExportFormat = "svg"
)
