// Package coxpresdb provides loading and validation of COXPRESdb
// gene-coexpression archives.
package coxpresdb

// Modality is the experimental platform category a coexpression dataset was
// derived from.
type Modality string

// Supported modalities and their single-letter archive codes.
const (
	ModalityMicroarray Modality = "microarray"
	ModalityRNASeq     Modality = "rna-seq"
	ModalityUnion      Modality = "union"
)

var modalityCodes = map[Modality]string{
	ModalityMicroarray: "m",
	ModalityRNASeq:     "r",
	ModalityUnion:      "u",
}

var codeModalities = map[string]Modality{
	"m": ModalityMicroarray,
	"r": ModalityRNASeq,
	"u": ModalityUnion,
}

// ParseModality validates a modality string. It fails with an
// InvalidArgumentError before any filesystem access happens.
func ParseModality(s string) (Modality, error) {
	m := Modality(s)
	if _, ok := modalityCodes[m]; !ok {
		return "", &InvalidArgumentError{
			Field:  "modality",
			Value:  s,
			Reason: "must be one of: microarray, rna-seq, union",
		}
	}
	return m, nil
}

// Code returns the single-letter code used in archive filenames.
func (m Modality) Code() string {
	return modalityCodes[m]
}

// ModalityFromCode maps a single-letter archive code back to a modality
// name. Unknown codes are returned as-is so inventory listings can still
// surface unrecognized archives.
func ModalityFromCode(code string) string {
	if m, ok := codeModalities[code]; ok {
		return string(m)
	}
	return code
}
