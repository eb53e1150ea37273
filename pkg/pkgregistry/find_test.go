// SPDX-License-Identifier: MPL-2.0

package pkgregistry_test

import (
	"testing"

	"github.com/mfsim/mfsim/pkg/datastore"
	"github.com/mfsim/mfsim/pkg/pkgregistry"
)

func TestFind_EmptyRegistry(t *testing.T) {
	t.Parallel()

	r := pkgregistry.New(nil)
	all := r.Find("", pkgregistry.FindOptions{})
	if all.Kind != pkgregistry.MatchList || len(all.Packages) != 0 || all.Packages == nil {
		t.Errorf("Find(\"\") = %+v, want an empty list", all)
	}
	if m := r.Find("nonexistent", pkgregistry.FindOptions{}); m.Kind != pkgregistry.MatchNone {
		t.Errorf("Find(nonexistent) = %+v, want none", m)
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	r := pkgregistry.New(nil)
	wel1 := &pkgregistry.Package{Name: "WEL-1", Type: "wel", Filename: "model.wel", Path: datastore.Key{"gwf1", "wel", "WEL-1"}}
	wel2 := &pkgregistry.Package{Name: "WEL-2", Type: "wel", Path: datastore.Key{"gwf1", "wel", "WEL-2"}}
	dis := &pkgregistry.Package{Name: "dis", Type: "DIS", Filename: "Model.DIS"}
	riv := &pkgregistry.Package{Name: "riv_upper", Type: "riv", Filename: "upper.riv"}
	typedName := &pkgregistry.Package{Name: "riv", Type: "chd"}
	mustAdd(t, r, wel1, wel2, dis, riv, typedName)

	tests := []struct {
		name  string
		query string
		opts  pkgregistry.FindOptions
		kind  pkgregistry.MatchKind
		want  []*pkgregistry.Package
	}{
		{"exact name", "wel-1", pkgregistry.FindOptions{}, pkgregistry.MatchSingle, []*pkgregistry.Package{wel1}},
		{"exact name mixed case", "Wel-1", pkgregistry.FindOptions{}, pkgregistry.MatchSingle, []*pkgregistry.Package{wel1}},
		{"type with several", "WEL", pkgregistry.FindOptions{}, pkgregistry.MatchList, []*pkgregistry.Package{wel1, wel2}},
		{"type with one", "dis", pkgregistry.FindOptions{TypeOnly: true}, pkgregistry.MatchSingle, []*pkgregistry.Package{dis}},
		{"name precedes type", "riv", pkgregistry.FindOptions{}, pkgregistry.MatchSingle, []*pkgregistry.Package{typedName}},
		{"type only skips name", "riv", pkgregistry.FindOptions{TypeOnly: true}, pkgregistry.MatchSingle, []*pkgregistry.Package{riv}},
		{"filename", "model.dis", pkgregistry.FindOptions{}, pkgregistry.MatchSingle, []*pkgregistry.Package{dis}},
		{"type only skips filename", "upper.riv", pkgregistry.FindOptions{TypeOnly: true}, pkgregistry.MatchNone, nil},
		{"name only skips type", "wel", pkgregistry.FindOptions{NameOnly: true}, pkgregistry.MatchSingle, []*pkgregistry.Package{wel1}},
		{"partial name first inserted", "WEL-", pkgregistry.FindOptions{}, pkgregistry.MatchSingle, []*pkgregistry.Package{wel1}},
		{"partial name", "riv_u", pkgregistry.FindOptions{}, pkgregistry.MatchSingle, []*pkgregistry.Package{riv}},
		{"query longer than name", "dis-extra", pkgregistry.FindOptions{}, pkgregistry.MatchNone, nil},
		{"miss", "sfr", pkgregistry.FindOptions{}, pkgregistry.MatchNone, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := r.Find(tt.query, tt.opts)
			if m.Kind != tt.kind {
				t.Fatalf("Find(%q).Kind = %s, want %s", tt.query, m.Kind, tt.kind)
			}
			got := m.All()
			if len(got) != len(tt.want) {
				t.Fatalf("Find(%q) = %v, want %v", tt.query, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Find(%q)[%d] = %s, want %s", tt.query, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFind_AllReturnsCopy(t *testing.T) {
	t.Parallel()

	r := pkgregistry.New(nil)
	p := &pkgregistry.Package{Type: "oc"}
	mustAdd(t, r, p)

	m := r.Find("", pkgregistry.FindOptions{})
	m.Packages[0] = nil
	if r.Find("", pkgregistry.FindOptions{}).Packages[0] != p {
		t.Error("Find(\"\") should return a copy of the package list")
	}
}
