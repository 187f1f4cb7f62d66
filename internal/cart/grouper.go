package cart

// GroupBySupplier partitions cart items into one group per supplier. Items
// without a supplier belong to the platform's virtual store. Group order
// follows first appearance in the cart, and items keep their cart order
// within each group. Totals are recomputed from scratch on every call; the
// function is pure.
func GroupBySupplier(items []Item) []SupplierGroup {
	if len(items) == 0 {
		return nil
	}

	indexByKey := make(map[string]int, len(items))
	groups := make([]SupplierGroup, 0, len(items))

	for _, item := range items {
		key := item.SupplierKey()
		idx, ok := indexByKey[key]
		if !ok {
			idx = len(groups)
			indexByKey[key] = idx
			groups = append(groups, SupplierGroup{
				Key:          key,
				SupplierID:   item.SupplierID,
				SupplierName: supplierDisplayName(item),
			})
		}

		group := &groups[idx]
		group.Items = append(group.Items, item)
		group.Subtotal = group.Subtotal.Add(item.TotalPrice)
		group.ShippingCost = group.ShippingCost.Add(item.ShippingCost)
		if item.HasStockIssue() {
			group.HasStockIssues = true
		}
		// TODO: parse lead times into durations; plain string comparison
		// misorders values like "9 days" vs "10 days".
		if item.LeadTime != "" && (group.EstimatedDelivery == "" || item.LeadTime > group.EstimatedDelivery) {
			group.EstimatedDelivery = item.LeadTime
		}
	}

	for i := range groups {
		groups[i].Total = groups[i].Subtotal.Add(groups[i].ShippingCost)
	}

	return groups
}

func supplierDisplayName(item Item) string {
	if item.SupplierName != "" {
		return item.SupplierName
	}
	if item.SupplierID == nil {
		return PlatformSupplierName
	}
	return item.SupplierID.String()
}
