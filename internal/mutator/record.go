package mutator

import "io/fs"

// Kind identifies the mutation a Record undoes.
type Kind string

const (
	KindCopy  Kind = "copy"
	KindMerge Kind = "merge"
	KindMkdir Kind = "mkdir"
)

// Record is one entry of the undo log. It is appended only after the
// mutation it describes has been written to disk.
type Record struct {
	Kind        Kind
	Source      string
	Destination string

	// Original holds the destination bytes read before the mutation.
	// For a copy it is only set when the destination already existed.
	Original []byte
	Mode     fs.FileMode
	Existed  bool
}

// RollbackReport summarizes a rollback. Warnings are never fatal.
type RollbackReport struct {
	Removed  []string
	Restored []string
	Warnings []string

	// ResetRequired tells the caller to run the broader environment reset.
	// The log only covers file mutations, not what external commands did.
	ResetRequired bool
}
