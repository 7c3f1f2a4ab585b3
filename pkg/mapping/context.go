package mapping

// mappingContext is the scratch state of a single Map call.
// It is created fresh per call and never shared between calls.
type mappingContext struct {
	ids allocator

	// compounds maps Membership.Key() to the compound created for it.
	compounds map[string]ID

	// nodeDisplay and edgeDisplay map original identities to display IDs.
	nodeDisplay map[string][]ID
	edgeDisplay map[string][]ID

	// source maps every display instance back to its node identity.
	source map[ID]string
}

func newMappingContext(pass string) *mappingContext {
	mc := &mappingContext{ids: newAllocator(pass)}
	mc.reset()
	return mc
}

// reset clears all tables and restarts the identifier counter.
func (mc *mappingContext) reset() {
	mc.ids.reset()
	mc.compounds = make(map[string]ID)
	mc.nodeDisplay = make(map[string][]ID)
	mc.edgeDisplay = make(map[string][]ID)
	mc.source = make(map[ID]string)
}

func (mc *mappingContext) compoundFor(m Membership) ID {
	return mc.compounds[m.Key()]
}

func (mc *mappingContext) recordNode(nodeID string, ids []ID) {
	mc.nodeDisplay[nodeID] = ids
	for _, id := range ids {
		mc.source[id] = nodeID
	}
}

func (mc *mappingContext) recordEdge(edgeID string, ids []ID) {
	mc.edgeDisplay[edgeID] = append(mc.edgeDisplay[edgeID], ids...)
}
