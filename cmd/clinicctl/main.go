// clinicctl tareas de operación: migraciones del esquema y alta del usuario Master inicial.
//
// Uso:
//
//	clinicctl migrate up
//	clinicctl migrate down --steps 1
//	clinicctl migrate version
//	clinicctl seed-master
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
