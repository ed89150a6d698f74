package domain

import "errors"

// ErrStoreUnavailable indicates the corpus store could not be reached.
// This is distinct from "no emails cached yet", which is an empty corpus
// and not an error. Dimension errors from the similarity index are the
// other fatal pipeline condition; they carry vecindex.ErrDimensionMismatch.
var ErrStoreUnavailable = errors.New("corpus store unavailable")
