// Comando invoicectl: herramientas de operación del motor de facturas
// (numeración, totales, drenado del outbox en archivo, PDF, migraciones).
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// .env opcional; las variables ya definidas en el entorno tienen prioridad.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
