package rules

import (
	"testing"

	"github.com/beevik/etree"
)

func element(t *testing.T, xml string) *etree.Element {
	t.Helper()

	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		t.Fatalf("can't parse %q: %v", xml, err)
	}

	return doc.Root()
}

func attrs(e *etree.Element) map[string]string {
	result := make(map[string]string)
	for _, a := range e.Attr {
		result[a.FullKey()] = a.Value
	}

	return result
}

func TestDefaultRules(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]string
		removed int
	}{
		{"hex fill", `<path fill="#ff0000" d="M0 0"/>`, map[string]string{"d": "M0 0"}, 1},
		{"short hex fill", `<path fill="#fff"/>`, map[string]string{}, 1},
		{"none fill", `<g fill="none"/>`, map[string]string{}, 1},
		{"fill-rule evenodd", `<path fill-rule="evenodd"/>`, map[string]string{}, 1},
		{"fill-rule empty", `<path fill-rule=""/>`, map[string]string{}, 1},
		{"named fill kept", `<circle fill="red"/>`, map[string]string{"fill": "red"}, 0},
		{"currentColor kept", `<circle fill="currentColor"/>`, map[string]string{"fill": "currentColor"}, 0},
		{"url fill kept", `<circle fill="url(#g)"/>`, map[string]string{"fill": "url(#g)"}, 0},
		{"none prefix kept", `<circle fill="nonez"/>`, map[string]string{"fill": "nonez"}, 0},
		{"uppercase NONE kept", `<circle fill="NONE"/>`, map[string]string{"fill": "NONE"}, 0},
		{"case sensitive name", `<circle FILL="#fff"/>`, map[string]string{"FILL": "#fff"}, 0},
		{"clip-rule kept", `<path clip-rule="evenodd" fill-rule="evenodd"/>`, map[string]string{"clip-rule": "evenodd"}, 1},
		{
			"namespaced kept",
			`<path xmlns:x="urn:x" x:fill="#fff" x:fill-rule="evenodd"/>`,
			map[string]string{"xmlns:x": "urn:x", "x:fill": "#fff", "x:fill-rule": "evenodd"},
			0,
		},
		{"both removed", `<path fill="#000" fill-rule="nonzero" stroke="#000"/>`, map[string]string{"stroke": "#000"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := element(t, tt.input)
			removed := Walk(e, Default())

			if removed != tt.removed {
				t.Errorf("removed %d attributes, want %d", removed, tt.removed)
			}

			got := attrs(e)
			if len(got) != len(tt.want) {
				t.Fatalf("got attributes %v, want %v", got, tt.want)
			}

			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("attribute %s = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestRulesAreIndependent(t *testing.T) {
	// every rule has to be evaluated on every element, in any order
	input := `<svg fill="none"><g fill="#123"><path fill-rule="evenodd" fill="none"/></g></svg>`

	forward := element(t, input)
	reversed := element(t, input)

	rs := Default()
	backwards := []Rule{rs[2], rs[1], rs[0]}

	if n := Walk(forward, rs); n != 4 {
		t.Fatalf("forward removed %d, want 4", n)
	}

	if n := Walk(reversed, backwards); n != 4 {
		t.Fatalf("reversed removed %d, want 4", n)
	}

	for _, e := range append(forward.FindElements("//*"), forward) {
		if len(e.Attr) != 0 {
			t.Errorf("<%s> still has attributes %v", e.Tag, attrs(e))
		}
	}
}

func TestAttributeOrderPreserved(t *testing.T) {
	e := element(t, `<path a="1" fill="#fff" b="2" fill-rule="evenodd" c="3"/>`)
	Walk(e, Default())

	want := []string{"a", "b", "c"}
	if len(e.Attr) != len(want) {
		t.Fatalf("got %d attributes, want %d", len(e.Attr), len(want))
	}

	for i, k := range want {
		if e.Attr[i].Key != k {
			t.Errorf("attribute #%d is %s, want %s", i, e.Attr[i].Key, k)
		}
	}
}

func TestMatches(t *testing.T) {
	e := element(t, `<path fill="#fff"/>`)
	if !(RemoveAttr{Key: "fill", Match: HasPrefix("#")}).Matches(e) {
		t.Error("hex rule should match")
	}

	if (RemoveAttr{Key: "fill", Match: Equals("none")}).Matches(e) {
		t.Error("none rule should not match")
	}

	if (RemoveAttr{Key: "fill-rule", Match: Any}).Matches(e) {
		t.Error("fill-rule rule should not match")
	}
}

func TestWalkNil(t *testing.T) {
	if n := Walk(nil, Default()); n != 0 {
		t.Errorf("Walk(nil) = %d", n)
	}
}
