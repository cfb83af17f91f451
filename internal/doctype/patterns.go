package doctype

import "regexp"

// Indicator patterns below are matched against the lower-cased document
// text; each matching pattern earns its category one point. The lists are
// deliberately redundant (spacing and OCR-error variants of the same
// phrase) so noisy scans still accumulate signal. New categories should be
// added here as data, not as new code paths in the scorer.
var indicatorPatterns = map[Type][]*regexp.Regexp{
	DHLReceipt: compileAll(
		`\bdhl\b`,
		`\bd\s*h\s*l\b`,
		`\bd\s*[h]\s*l\b`,
		`\bwaybill\b`,
		`\bway\s*bill\b`,
		`\btracking\s*number\b`,
		`\btrack\s*no\b`,
		`\bairway\s*bill\b`,
		`\bair\s*way\s*bill\b`,
		`\bexpress\s*service\b`,
		`\bdelivery\s*receipt\b`,
		`\bdelivery\s*note\b`,
		`\bparcel\s*receipt\b`,
		`\bparcel\s*note\b`,
		`\bshipping\s*label\b`,
		`\bship\s*label\b`,
		`\bconsignment\s*note\b`,
		`\bconsign\s*note\b`,
		`\bdispatch\s*note\b`,
		`\bdispatch\s*advice\b`,
	),
	CommercialInvoice: compileAll(
		`\bcommercial\s*invoice\b`,
		`\binvoice\s*no\b`,
		`\binvoice\s*date\b`,
		`\btotal\s*invoice\s*value\b`,
		`\btotal\s*value\b`,
		`\binvoice\s*value\b`,
		`\bcfr\b`,
		`\bcif\b`,
		`\bfob\b`,
		`\bex\s*works\b`,
		`\bcurrency\b`,
		`\bunit\s*price\b`,
		`\bprice\s*per\s*unit\b`,
		`\brate\b`,
		`\bquantity\b`,
		`\bqty\b`,
		`\bamount\b`,
		`\bnet\s*weight\b`,
		`\bgross\s*weight\b`,
		`\bpackaging\b`,
		`\bpayment\s*terms\b`,
		`\bpayment\s*conditions\b`,
		`\bterms\s*of\s*payment\b`,
		`\bbuyer\b`,
		`\bseller\b`,
		`\bvendor\b`,
		`\bsupplier\b`,
		`\bpurchaser\b`,
		`\bcustomer\b`,
		`\bgoods\s*description\b`,
		`\bdescription\s*of\s*goods\b`,
		`\bproduct\s*description\b`,
		`\bincoterms\b`,
		`\bexport\s*references\b`,
		`\bjob\s*no\b`,
		`\bcontract\s*no\b`,
		`\border\s*no\b`,
		`\bpurchase\s*order\b`,
		`\bpo\s*no\b`,
	),
	BillOfLading: compileAll(
		`\bbill\s*of\s*lading\b`,
		`\bocean\s*freight\b`,
		`\bshipper\s*exporter\b`,
		`\bshipper\b`,
		`\bexporter\b`,
		`\bconsignee\b`,
		`\bnotify\s*party\b`,
		`\bnotify\b`,
		`\bport\s*of\s*loading\b`,
		`\bport\s*of\s*discharge\b`,
		`\bport\s*of\s*unloading\b`,
		`\bvessel\b`,
		`\bship\b`,
		`\bcarrier\b`,
		`\bcontainer\s*no\b`,
		`\bcontainer\s*number\b`,
		`\bseal\s*no\b`,
		`\bseal\s*number\b`,
		`\bshipped\s*on\s*board\b`,
		`\bon\s*board\s*date\b`,
		`\bnon\s*negotiable\b`,
		`\bocean\s*track\b`,
		`\bnvocc\b`,
		`\bforwarding\s*agent\b`,
		`\bfreight\s*forwarder\b`,
		`\btransport\s*company\b`,
		`\bshipping\s*line\b`,
		`\bocean\s*carrier\b`,
		`\bvoyage\s*no\b`,
		`\bvoyage\s*number\b`,
		`\broute\b`,
		`\bshipping\s*route\b`,
		`\btransit\s*time\b`,
		`\bdelivery\s*terms\b`,
		`\bshipping\s*terms\b`,
		`\bfreight\s*terms\b`,
		`\bfreight\s*prepaid\b`,
		`\bfreight\s*collect\b`,
		`\bcharter\s*party\b`,
		`\bcharter\s*party\s*bill\b`,
		`\bhouse\s*bill\b`,
		`\bmaster\s*bill\b`,
		`\bstraight\s*bill\b`,
		`\border\s*bill\b`,
		`\bnegotiable\s*bill\b`,
	),
	PackingList: compileAll(
		`\bpacking\s*list\b`,
		`\bpackage\s*list\b`,
		`\bpackages\b`,
		`\bpackage\s*numbers\b`,
		`\bpackage\s*nos\b`,
		`\bpackaging\s*details\b`,
		`\bcontents\s*list\b`,
		`\bitem\s*list\b`,
		`\bgoods\s*list\b`,
		`\bpacking\s*instructions\b`,
		`\bpacking\s*details\b`,
		`\bpackage\s*contents\b`,
		`\bpackage\s*description\b`,
	),
	ShipmentAdvice: compileAll(
		`\bshipment\s*advice\b`,
		`\bshipping\s*advice\b`,
		`\bshipment\s*notification\b`,
		`\bshipping\s*notification\b`,
		`\badvice\s*of\s*shipment\b`,
		`\bshipment\s*details\b`,
		`\bshipping\s*details\b`,
		`\bshipment\s*information\b`,
		`\bshipping\s*information\b`,
		`\bshipment\s*status\b`,
		`\bshipping\s*status\b`,
	),
	CoveringSchedule: compileAll(
		`\bcovering\s*schedule\b`,
		`\bschedule\s*of\s*documents\b`,
		`\bdocument\s*schedule\b`,
		`\battachments\s*list\b`,
		`\bsupporting\s*documents\b`,
		`\bdocument\s*list\b`,
		`\battachments\b`,
		`\bsupporting\s*docs\b`,
		`\bdocument\s*attachments\b`,
		`\bschedule\s*of\s*attachments\b`,
	),
}

// typePhrase pairs a category with the plain substrings that identify it on
// a title line.
type typePhrase struct {
	cat     Type
	phrases []string
}

// headerPhrases is checked in order against each leading line; the first
// category found on a line takes that line's boost.
var headerPhrases = []typePhrase{
	{PackingList, []string{"packing list"}},
	{ShipmentAdvice, []string{"shipment advice"}},
	{CoveringSchedule, []string{"covering schedule"}},
	{CommercialInvoice, []string{"commercial invoice"}},
	{BillOfLading, []string{"bill of lading"}},
	{DHLReceipt, []string{"dhl", "waybill"}},
}

// titlePhrases is the body-wide variant of headerPhrases. A category only
// collects body-title boosts when none of its phrases already appeared on a
// leading line.
var titlePhrases = []typePhrase{
	{ShipmentAdvice, []string{"shipment advice"}},
	{CoveringSchedule, []string{"covering schedule"}},
	{PackingList, []string{"packing list"}},
	{CommercialInvoice, []string{"commercial invoice"}},
	{BillOfLading, []string{"bill of lading"}},
	{DHLReceipt, []string{"dhl", "waybill"}},
}

// enclosureCues mark cover letters that transmit a set of documents.
var enclosureCues = []string{
	"please find enclosed the following documents",
	"enclosed the following documents",
	"documents for",
	"1st mail",
	"2nd mail",
	"draft",
	"konnossement",
	"mail of documents",
	"documentary credit",
	"our reference date",
	"your reference",
}

// coveringPhrases are the plain-substring forms of the covering-schedule
// indicators, used for cue counting.
var coveringPhrases = []string{
	"covering schedule",
	"schedule of documents",
	"document schedule",
	"attachments list",
	"supporting documents",
	"document list",
	"attachments",
	"supporting docs",
	"document attachments",
	"schedule of attachments",
}

// listContextCues signal that a bill-of-lading mention sits inside an
// enclosure list rather than heading the document itself.
var listContextCues = []string{
	"1st mail",
	"2nd mail",
	"mail of documents",
	"please find enclosed",
	"documents for",
}

// referencedTypeGroups are the document-type names a covering schedule
// routinely lists. Each group counts once however many variants appear.
var referencedTypeGroups = [][]string{
	{"commercial invoice"},
	{"packing list"},
	{"shipping advice", "shipment advice"},
	{"bill of lading", "konnossement"},
	{"draft"},
}

// packagingCues and shipmentCues are secondary content signals for their
// categories.
var packagingCues = []string{"packaging:", "package nos"}

var shipmentCues = []string{
	"shipment details",
	"shipping details",
	"vessel name",
	"shipped on board date",
	"expected arrival date",
}

// Score deltas and thresholds. These were tuned empirically against labeled
// OCR scans; treat them as adjustable data rather than structure.
const (
	headerWindow = 15 // leading lines eligible for the header boost

	headerLineBoost = 5 // category title on a leading line
	titleLineBoost  = 5 // category title on any other line

	bolListedPenalty     = 3  // bill of lading named inside an enclosure list
	coveringContentBoost = 10 // covering-schedule phrase anywhere in the text
	mailOfDocumentsBoost = 8
	packagingCueBoost    = 3
	shipmentPhraseBoost  = 3
	shipmentCueBoost     = 2

	cueBoostHigh = 15 // three or more covering cues
	cueBoostMid  = 10 // exactly two
	cueBoostLow  = 5  // exactly one

	mixedSignalFloor     = 20 // combined score beyond which overlap penalties apply
	overlapPenalty       = 3
	sidelinedInvoiceCut  = 2
	bolEnclosurePenalty  = 15
	bolStrongCuePenalty  = 12
	bolWeakCuePenalty    = 8
	bolMailPenalty       = 20
	coveringCrossBoost   = 8
	crossPenaltyStandard = 5
	crossPenaltyBOL      = 8
	moderateBOLCut       = 4
	moderateInvoiceCut   = 2

	confidentFloor = 3 // unique maximum accepted on body evidence alone
	headerFloor    = 2 // unique maximum accepted only with header evidence
)

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}
