// Package insurance contiene las reglas de dominio del back-office de seguros:
// validación de montos contra cobertura, transiciones de estado de clientes, pólizas y
// reclamaciones, vencimiento derivado de pólizas, guardas de borrado por dependientes y
// generación de números legibles (POL-/CLM-).
//
// Todas las funciones son puras: no hacen I/O y reciben la hora actual como parámetro.
package insurance
