package align

import (
	"github.com/davecgh/go-spew/spew"

	"github.com/KorAP/asr-score/fst"
)

// DumpLattice renders a composed lattice's states and arcs for --debug
// diagnosis, replacing the teacher's scattered debug fmt.Println calls
// with one structured dumper.
func DumpLattice(uid string, l *fst.FST) string {
	return "lattice " + uid + ":\n" + spew.Sdump(l)
}

// DumpPath renders a shortest path's arc sequence for --debug diagnosis.
func DumpPath(uid string, p fst.Path) string {
	return "path " + uid + ":\n" + spew.Sdump(p)
}
