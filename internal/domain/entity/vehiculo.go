package entity

import "time"

// Vehiculo de un cliente. SOATVencimientoRecordatorio se alimenta de la fecha fin de su póliza SOAT.
type Vehiculo struct {
	ID                          string
	ClienteID                   string
	Placa                       string
	Marca                       string
	Modelo                      string
	Ano                         *int
	SOATVencimientoRecordatorio *time.Time
}
