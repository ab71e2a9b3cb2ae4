package config

import (
	"github.com/qdm12/gosettings"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
)

type Backup struct {
	// Directory is the directory to write cache backup zip
	// files to; leaving it empty disables backups.
	Directory *string
}

func (b *Backup) setDefaults() {
	b.Directory = gosettings.DefaultPointer(b.Directory, "")
}

func (b Backup) Validate() (err error) {
	return nil
}

func (b Backup) String() string {
	return b.toLinesNode().String()
}

func (b Backup) toLinesNode() *gotree.Node {
	if *b.Directory == "" {
		return gotree.New("Backup: disabled")
	}
	node := gotree.New("Backup")
	node.Appendf("Directory: %s", *b.Directory)
	return node
}

func (b *Backup) read(r *reader.Reader) {
	b.Directory = r.Get("BACKUP_DIRECTORY", reader.ForceLowercase(false))
}
