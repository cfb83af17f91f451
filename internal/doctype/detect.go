package doctype

import "strings"

// Detect scores text against every category and returns the decision with
// its evidence. The pass order matters: indicator counting, the
// bill-of-lading enclosure discount, header and body title boosts,
// covering-schedule cue analysis, then the cross-type penalties. Scores
// never go below zero at any step. Detect never fails; arbitrary bytes
// simply score nothing.
func Detect(text string) Detection {
	lower := strings.ToLower(text)
	scores := make(map[Type]int, len(Categories))

	for _, cat := range Categories {
		n := 0
		for _, re := range indicatorPatterns[cat] {
			if re.MatchString(lower) {
				n++
			}
		}
		scores[cat] = n
	}

	// Covering schedules routinely name the bill of lading as an enclosed
	// item. When enclosure phrasing surrounds the mention, discount it
	// before any boosts land.
	if strings.Contains(lower, "bill of lading") || strings.Contains(lower, "konnossement") {
		if containsAny(lower, listContextCues) {
			scores[BillOfLading] = cut(scores[BillOfLading], bolListedPenalty)
		}
	}

	headerLines, allLines := titleLines(text)

	headerBoosts := make(map[Type]int)
	for _, line := range headerLines {
		for _, hp := range headerPhrases {
			if containsAny(line, hp.phrases) {
				scores[hp.cat] += headerLineBoost
				headerBoosts[hp.cat]++
				break
			}
		}
	}

	// Title lines deeper in the document still count, but only for
	// categories whose phrases never appeared up top.
	for _, line := range allLines {
		for _, tp := range titlePhrases {
			if !containsAny(line, tp.phrases) {
				continue
			}
			if anyLineContainsAny(headerLines, tp.phrases) {
				continue
			}
			scores[tp.cat] += titleLineBoost
			break
		}
	}

	if strings.Contains(lower, "covering schedule") || strings.Contains(lower, "schedule of documents") {
		scores[CoveringSchedule] += coveringContentBoost
	}

	// Cue counting decides how aggressively the covering-schedule
	// adjustments below apply.
	cues := 0
	if containsAny(lower, enclosureCues) {
		cues++
	}
	if strings.Contains(lower, "mail of documents") {
		scores[CoveringSchedule] += mailOfDocumentsBoost
		cues++
	}
	if containsAny(lower, coveringPhrases) {
		cues++
	}

	referenced := 0
	for _, group := range referencedTypeGroups {
		if containsAny(lower, group) {
			referenced++
		}
	}
	switch {
	case referenced >= 3:
		cues += 3
	case referenced >= 2:
		cues += 2
	}

	switch {
	case cues >= 3:
		scores[CoveringSchedule] += cueBoostHigh
	case cues == 2:
		scores[CoveringSchedule] += cueBoostMid
	case cues == 1:
		scores[CoveringSchedule] += cueBoostLow
	}

	if containsAny(lower, packagingCues) {
		scores[PackingList] += packagingCueBoost
	}
	if strings.Contains(lower, "shipment advice") || strings.Contains(lower, "shipping advice") {
		scores[ShipmentAdvice] += shipmentPhraseBoost
	}
	if containsAny(lower, shipmentCues) {
		scores[ShipmentAdvice] += shipmentCueBoost
	}

	// Heavy mixed signal means one document's body is matching another
	// type's vocabulary; discount the weaker of the common collisions.
	total := 0
	for _, cat := range Categories {
		total += scores[cat]
	}
	if total > mixedSignalFloor {
		if scores[CommercialInvoice] > 0 && scores[BillOfLading] > 0 {
			if scores[CommercialInvoice] < scores[BillOfLading] {
				scores[CommercialInvoice] = cut(scores[CommercialInvoice], overlapPenalty)
			} else {
				scores[BillOfLading] = cut(scores[BillOfLading], overlapPenalty)
			}
		}
		if scores[CommercialInvoice] > 0 &&
			(scores[PackingList] > 0 || scores[ShipmentAdvice] > 0 || scores[CoveringSchedule] > 0) {
			if strings.Contains(lower, "packing list") ||
				strings.Contains(lower, "shipment advice") ||
				strings.Contains(lower, "covering schedule") {
				scores[CommercialInvoice] = cut(scores[CommercialInvoice], sidelinedInvoiceCut)
			}
		}
	}

	if cues >= 2 && scores[BillOfLading] > 0 {
		switch {
		case strings.Contains(lower, "mail of documents") || strings.Contains(lower, "please find enclosed"):
			scores[BillOfLading] = cut(scores[BillOfLading], bolEnclosurePenalty)
		case cues >= 3:
			scores[BillOfLading] = cut(scores[BillOfLading], bolStrongCuePenalty)
		default:
			scores[BillOfLading] = cut(scores[BillOfLading], bolWeakCuePenalty)
		}
	}
	if cues >= 3 && strings.Contains(lower, "mail of documents") {
		scores[BillOfLading] = cut(scores[BillOfLading], bolMailPenalty)
	}

	otherSignal := scores[CommercialInvoice] > 0 || scores[BillOfLading] > 0 ||
		scores[PackingList] > 0 || scores[ShipmentAdvice] > 0
	if scores[CoveringSchedule] > 0 && cues >= 2 && otherSignal {
		scores[CoveringSchedule] += coveringCrossBoost

		if cues >= 3 {
			for _, p := range []struct {
				cat   Type
				delta int
			}{
				{CommercialInvoice, crossPenaltyStandard},
				{BillOfLading, crossPenaltyBOL},
				{PackingList, crossPenaltyStandard},
				{ShipmentAdvice, crossPenaltyStandard},
				{DHLReceipt, crossPenaltyStandard},
			} {
				if scores[p.cat] > 0 {
					scores[p.cat] = cut(scores[p.cat], p.delta)
				}
			}
		} else {
			if scores[BillOfLading] > 0 {
				scores[BillOfLading] = cut(scores[BillOfLading], moderateBOLCut)
			}
			if scores[CommercialInvoice] > 0 {
				scores[CommercialInvoice] = cut(scores[CommercialInvoice], moderateInvoiceCut)
			}
		}
	}

	best, max, unique := Unknown, 0, false
	for _, cat := range Categories {
		switch {
		case scores[cat] > max:
			best, max, unique = cat, scores[cat], true
		case scores[cat] == max:
			unique = false
		}
	}

	decision := Detection{Score: max, Scores: scores, HeaderBoosts: headerBoosts}
	if !unique {
		return decision
	}
	// Tiered floors: body evidence of confidentFloor stands alone; thinner
	// evidence needs the category's own title on a leading line.
	switch {
	case max >= confidentFloor:
		decision.Type = best
	case max >= headerFloor && headerBoosts[best] > 0:
		decision.Type = best
	}
	return decision
}

// DetectType is Detect reduced to the label alone.
func DetectType(text string) Type {
	return Detect(text).Type
}

// titleLines splits text into trimmed, lower-cased, non-blank lines; header
// holds those falling inside the leading headerWindow raw lines.
func titleLines(text string) (header, all []string) {
	for i, line := range strings.Split(text, "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		if i < headerWindow {
			header = append(header, line)
		}
		all = append(all, line)
	}
	return header, all
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func anyLineContainsAny(lines []string, substrings []string) bool {
	for _, line := range lines {
		if containsAny(line, substrings) {
			return true
		}
	}
	return false
}

func cut(score, delta int) int {
	if score -= delta; score < 0 {
		return 0
	}
	return score
}
