package lexicon

// streetSuffixes are the endings that mark a token as a Swedish street-type
// word, e.g. Storgatan, Sveavägen, Bäverbäcksgränd, Hagsätra torg.
var streetSuffixes = []string{
	"gatan", "gata", "vägen", "väg", "gränd", "gränden", "stigen", "stig", "backen",
	"backe", "torg", "torget", "plan", "planen", "allé", "allén", "leden", "led",
	"platsen", "plats", "stråket", "slingan", "gången", "kajen", "kaj", "stranden",
	"strand", "promenaden", "terrassen", "esplanaden", "bron", "kroken", "svängen",
	"ringen", "liden", "udden", "höjden",
}

var suffixes = mustWordSet(streetSuffixes...)

// StreetSuffixes returns the street-type suffix lexicon.
func StreetSuffixes() *Set { return suffixes }
