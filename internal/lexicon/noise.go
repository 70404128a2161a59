package lexicon

// noiseWords never form part of a usable street name on a delivery manifest.
// Grouped loosely by where they show up on the page.
var noiseWords = []string{
	// organisation and company forms
	"brf", "bostadsrättsförening", "bostadsrättsföreningen", "hsb", "riksbyggen", "sbc",
	"ab", "hb", "kb", "aktiebolag", "handelsbolag", "ek", "ekonomisk", "förening",
	"föreningen", "stiftelse", "stiftelsen", "samfällighet", "samfällighetsförening",
	"koncern", "holding", "group", "invest", "sverige", "nordic", "scandinavia",

	// property owners and management
	"fastighet", "fastigheter", "fastighets", "fastighetsab", "fastighetsbolag",
	"förvaltning", "förvaltningen", "fastighetsförvaltning", "bostäder", "bostad",
	"bostadsbolag", "hyresgäst", "hyresgästförening", "hyresgästföreningen",
	"familjebostäder", "stockholmshem", "svenskabostäder", "micasa", "akelius",
	"heimstaden", "wallenstam", "balder", "victoriahem", "rikshem", "vasakronan",
	"hemsö", "stena", "einar", "mattsson", "hem",

	// housing cooperative names that precede the street on manifests
	"solen", "månen", "stjärnan", "eken", "björken", "linden", "tallen", "granen",
	"aspen", "lönnen", "almen", "rönnen", "hästen", "lärkan", "svalan", "måsen",

	// surnames
	"andersson", "johansson", "karlsson", "nilsson", "eriksson", "larsson", "olsson",
	"persson", "svensson", "gustafsson", "pettersson", "jonsson", "jansson", "hansson",
	"bengtsson", "jönsson", "lindberg", "jakobsson", "magnusson", "olofsson",
	"lindström", "lindqvist", "lindgren", "axelsson", "berg", "bergström", "lundberg",
	"lundgren", "lundqvist", "berglund", "fredriksson", "sandberg",
	"henriksson", "forsberg", "sjöberg", "wallin", "engström", "eklund", "danielsson",
	"lundin", "håkansson", "björk", "bergman", "gunnarsson", "holm", "wikström",
	"samuelsson", "isaksson", "fransson", "bergqvist", "nyström", "holmberg",
	"arvidsson", "löfgren", "söderberg", "nyberg", "blomqvist", "claesson", "nordström",
	"mohammed", "ali", "ahmed", "hassan", "hussein",

	// municipal and administrative words
	"kommun", "kommunen", "stad", "staden", "stadsdel", "stadsdelsförvaltning",
	"stadsdelsnämnd", "region", "regionen", "län", "länsstyrelsen", "landsting",
	"förskola", "förskolan", "skola", "skolan", "äldreboende", "vårdcentral",
	"kontor", "kontoret", "reception", "receptionen", "avdelning", "enhet",

	// apartment, entrance and floor markers
	"lgh", "lägenhet", "lägenhetsnr", "port", "porten", "uppg", "uppgång", "trappa",
	"tr", "vån", "våning", "nb", "bv", "källare", "vind", "förråd", "portkod", "kod",

	// manifest headings and contact clutter
	"kund", "kundnr", "kundnummer", "order", "ordernr", "ordernummer", "referens",
	"ref", "att", "attn", "co", "tel", "telefon", "mobil", "mob", "epost", "email",
	"sid", "sida", "datum", "leverans", "leveransadress", "hämtning", "hämtadress",
	"adress", "namn", "antal", "kolli", "vikt", "kg", "rutt", "tur", "stopp", "notering",
	"obs", "ring", "innan",
}

var noise = mustWordSet(noiseWords...)

// Noise returns the noise-word lexicon.
func Noise() *Set { return noise }
