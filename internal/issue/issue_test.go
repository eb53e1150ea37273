// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestValues_OrderedAndComplete(t *testing.T) {
	t.Parallel()

	all := Values()
	if len(all) != int(StoreOpenFailedId) {
		t.Fatalf("Values() returned %d issues, want %d", len(all), StoreOpenFailedId)
	}
	for i, is := range all {
		if is.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, is.Id(), i+1)
		}
		if strings.TrimSpace(string(is.MarkdownMsg())) == "" {
			t.Errorf("issue %d has empty markdown", is.Id())
		}
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	is := Get(RelocationFailedId)
	if is == nil {
		t.Fatal("Get(RelocationFailedId) returned nil")
	}
	out, err := is.Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "Relocation failed") {
		t.Errorf("Render() output missing heading:\n%s", out)
	}
	if Get(Id(999)) != nil {
		t.Error("Get(unknown) should return nil")
	}
}
