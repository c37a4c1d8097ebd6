// Package escpos builds the small set of ESC/POS command sequences platen
// emits around encoded text.
//
// Only commands the printing pipeline actually needs live here: code page
// selection, printer initialization, feeding, and paper cut. Styling,
// barcode, and raster commands are deliberately absent; platen is a text
// pipeline, not a full driver.
package escpos
