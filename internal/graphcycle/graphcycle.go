// Package graphcycle finds cycles in small named graphs such as class
// inheritance.
package graphcycle

// frame is one node on the walk path with the successors still to visit.
type frame[K comparable] struct {
	pending []K
}

// Find walks the graph from each root in order and returns the first cycle
// it meets, as the path from the repeated node back to itself.  Nodes for
// which known reports false are leaves; a nil known treats every node as
// known.  An error from next stops the walk.  A nil cycle means no root
// reaches a loop.
func Find[K comparable](roots []K, known func(K) bool, next func(K) ([]K, error)) ([]K, error) {
	isKnown := func(node K) bool { return known == nil || known(node) }
	finished := map[K]bool{}
	onPath := map[K]int{}
	var (
		path   []K
		frames []frame[K]
	)
	enter := func(node K) error {
		successors, err := next(node)
		if err != nil {
			return err
		}
		onPath[node] = len(path)
		path = append(path, node)
		frames = append(frames, frame[K]{pending: successors})
		return nil
	}

	for _, root := range roots {
		if finished[root] || !isKnown(root) {
			continue
		}
		if err := enter(root); err != nil {
			return nil, err
		}
		for len(frames) > 0 {
			top := &frames[len(frames)-1]
			if len(top.pending) == 0 {
				node := path[len(path)-1]
				delete(onPath, node)
				finished[node] = true
				path = path[:len(path)-1]
				frames = frames[:len(frames)-1]
				continue
			}
			successor := top.pending[0]
			top.pending = top.pending[1:]
			if at, ok := onPath[successor]; ok {
				cycle := append([]K(nil), path[at:]...)
				return append(cycle, successor), nil
			}
			if finished[successor] || !isKnown(successor) {
				continue
			}
			if err := enter(successor); err != nil {
				return nil, err
			}
		}
	}
	return nil, nil
}
