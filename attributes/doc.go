/*
Package attributes holds the loose key/value shape that callers hand to
factories, and the conversion from that shape into typed records.

Merging:

	defaults := attributes.Map{"Name": "Player", "Rating": 1500}
	merged := attributes.Merge(defaults, attributes.Map{"Rating": 1720})
	// merged == {"Name": "Player", "Rating": 1720}, defaults untouched

	same := defaults.MergedWith(attributes.Map{"Rating": 1720})

Merge is shallow: a nested map in the overlay replaces the nested map in the
base rather than being merged into it.

Decoding:

	var p models.Player
	if err := attributes.Decode(merged, &p); err != nil {
	    // errors.IsValidationError(err) == true
	}

Decode rejects keys that do not map to a field of the target, so a typo in a
fixture fails loudly instead of being dropped.
*/
package attributes
