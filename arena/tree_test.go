package arena

import "testing"

func TestCreateNodeIndicesNeverChange(t *testing.T) {
	tr := New()
	doc := tr.CreateNode(NewDocument())
	html := tr.CreateNode(NewElement("html", nil))
	tr.SetRoot(doc)
	tr.AddChild(doc, html)

	if tr.Root() != doc {
		t.Fatalf("Root() = %d, want %d", tr.Root(), doc)
	}
	if got := tr.Children(doc); len(got) != 1 || got[0] != html {
		t.Fatalf("Children(doc) = %v, want [%d]", got, html)
	}
}

func TestSetRootRejectsNonDocument(t *testing.T) {
	tr := New()
	el := tr.CreateNode(NewElement("html", nil))

	defer func() {
		if recover() == nil {
			t.Fatal("SetRoot on a non-Document node did not panic")
		}
	}()
	tr.SetRoot(el)
}

func TestGetNodeOutOfRangePanics(t *testing.T) {
	tr := New()
	tr.CreateNode(NewDocument())

	defer func() {
		if recover() == nil {
			t.Fatal("GetNode out of range did not panic")
		}
	}()
	tr.GetNode(Index(5))
}

func TestReplaceDataAtPreservesChildren(t *testing.T) {
	tr := New()
	doc := tr.CreateNode(NewDocument())
	tr.SetRoot(doc)
	body := tr.CreateNode(NewElement("body", nil))
	tr.AddChild(doc, body)
	text := tr.CreateNode(NewText("A"))
	tr.AddChild(body, text)

	tr.ReplaceDataAt(text, NewText("AB"))

	if got := tr.GetNode(text).Data; got != "AB" {
		t.Fatalf("data = %q, want %q", got, "AB")
	}
	if got := tr.Children(body); len(got) != 1 || got[0] != text {
		t.Fatalf("Children(body) = %v, want [%d]", got, text)
	}
}

// TestWalkDepthFirstPreOrder mirrors the basic() test from the tree this
// package is modeled on: a small document/html/{head,body} shape, walked
// in pre-order with depths recorded.
func TestWalkDepthFirstPreOrder(t *testing.T) {
	tr := New()
	doc := tr.CreateNode(NewDocument())
	tr.SetRoot(doc)
	html := tr.CreateNode(NewElement("html", nil))
	tr.AddChild(doc, html)
	head := tr.CreateNode(NewElement("head", nil))
	body := tr.CreateNode(NewElement("body", nil))
	tr.AddChildren(html, []Index{head, body})

	var depths []int
	var names []string
	tr.Walk(func(depth int, idx Index, data *Node) {
		depths = append(depths, depth)
		names = append(names, data.LocalName)
	})

	wantDepths := []int{0, 1, 2, 2}
	for i, d := range wantDepths {
		if depths[i] != d {
			t.Fatalf("depths = %v, want %v", depths, wantDepths)
		}
	}
	if names[1] != "html" || names[2] != "head" || names[3] != "body" {
		t.Fatalf("names = %v", names)
	}
}

func TestRenderMatchesSeedScenarioOne(t *testing.T) {
	tr := New()
	doc := tr.CreateNode(NewDocument())
	tr.SetRoot(doc)
	html := tr.CreateNode(NewElement("html", nil))
	tr.AddChild(doc, html)
	head := tr.CreateNode(NewElement("head", nil))
	body := tr.CreateNode(NewElement("body", nil))
	tr.AddChildren(html, []Index{head, body})
	text := tr.CreateNode(NewText("Test"))
	tr.AddChild(body, text)

	want := "#document\n| <html>\n|   <head>\n|   <body>\n|     \"Test\""
	if got := tr.Render(); got != want {
		t.Fatalf("Render() =\n%s\nwant\n%s", got, want)
	}
}
