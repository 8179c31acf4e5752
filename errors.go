package inch

import "errors"

// Errors returned by the loading, encoding, grouping and analysis
// functions. They are always wrapped with context; use errors.Is.
var (
	ErrMalformedHeader       = errors.New("malformed VCF header")
	ErrMalformedRecord       = errors.New("malformed VCF record")
	ErrAmbiguousChromosome   = errors.New("more than one chromosome in VCF file; specify one chromosome to use")
	ErrEmptyResult           = errors.New("no variants")
	ErrInvalidRegion         = errors.New("invalid region")
	ErrInvalidFormat         = errors.New("GT is not the first FORMAT field")
	ErrInvalidAllele         = errors.New("invalid base in REF or ALT")
	ErrInvalidGenotypeCode   = errors.New("invalid genotype code")
	ErrChromosomeMismatch    = errors.New("founders and descendents have different chromosomes")
	ErrNoSharedPositions     = errors.New("founders and descendents share no positions")
	ErrDuplicateGroupMember  = errors.New("groups contain duplicate IDs")
	ErrUnknownGroupMember    = errors.New("groups contain nonexistent IDs")
	ErrInvalidComponentCount = errors.New("invalid number of principal components")
)
