package grid

import "gitlab.com/tinyland/lab/gridline/pkg/patch"

// StageContext is the unit of work flowing through the render pipeline:
// one item's fragment plus its absolute index. Stages mutate it in place.
type StageContext struct {
	Index    int
	Fragment patch.Fragment
}

// Stage is one post-render transform. Stages run in registration order
// after the item renderer and may rewrite content or extent; the fragment
// index is pinned by the pipeline and cannot be reassigned.
type Stage func(*StageContext)

// wrapRenderer adapts the item-level collaborator to the patcher's
// index-based contract, threads each fragment through the stage pipeline,
// and records the materialized fragments for post-paint measurement.
func (g *Grid) wrapRenderer(r ItemRenderer, stages []Stage) patch.Renderer {
	return patch.RendererFunc(func(index int) patch.Fragment {
		g.mu.Lock()
		ds := g.dataset
		g.mu.Unlock()

		var item any
		if index >= 0 && index < ds.Len() {
			item = ds.At(index)
		}
		frag := r.RenderItem(item, index)
		frag.Index = index
		if frag.Extent <= 0 {
			frag.Extent = 1
		}
		for _, st := range stages {
			sc := StageContext{Index: index, Fragment: frag}
			st(&sc)
			frag = sc.Fragment
			frag.Index = index
		}

		g.mu.Lock()
		g.lastFrags = append(g.lastFrags, frag)
		g.mu.Unlock()
		return frag
	})
}
