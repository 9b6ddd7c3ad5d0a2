package entity

// CompaniaAseguradora aseguradora que emite la póliza; agrupa el reporte de comisiones.
type CompaniaAseguradora struct {
	ID     string
	Nombre string
}
