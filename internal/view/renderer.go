package view

// Renderer writes render models into a Target.
type Renderer struct {
	target Target
}

func NewRenderer(target Target) *Renderer {
	return &Renderer{target: target}
}

// Render applies the regions present in m, lists first, in page order.
func (r *Renderer) Render(m Model) {
	for _, region := range ListRegions {
		if entries, ok := m.Lists[region]; ok {
			r.target.SetList(region, entries)
		}
	}
	for _, region := range TextRegions {
		if text, ok := m.Texts[region]; ok {
			r.target.SetText(region, text)
		}
	}
}

// RenderText writes a single text region; used by the clock and countdown.
func (r *Renderer) RenderText(region Region, text string) {
	r.target.SetText(region, text)
}
