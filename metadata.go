package rowhook

// publishMetadata copies every slot marked by the store_meta action into
// msg's metadata map under MetadataJPointerKey, in needle declaration
// order, so a later needle's value overwrites an earlier one's exactly as
// documented: last writer wins.
//
// This runs after the full NeedleSet has been walked and only on a Keep
// path; a dropped message's metadata is left untouched.
func publishMetadata(msg Message, needles *NeedleSet, slots []evalSlot) {
	var published string
	var any bool

	for i := range needles.Needles {
		slot := &slots[i]
		if !slot.publishMeta || slot.null {
			continue
		}
		published = string(slot.bytes)
		any = true
	}

	if any {
		msg.Metadata()[MetadataJPointerKey] = published
	}
}
