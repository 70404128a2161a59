package lexicon

// FallbackCity is used when a line names none of the known cities.
const FallbackCity = "Stockholm"

var cityNames = []string{
	"stockholm", "solna", "sundbyberg", "nacka", "huddinge", "täby", "danderyd",
	"lidingö", "järfälla", "sollentuna", "botkyrka", "haninge", "tyresö",
	"södertälje", "bromma", "vällingby", "farsta", "skärholmen", "hägersten",
	"spånga", "kista", "enskede", "johanneshov", "älvsjö", "bandhagen", "tumba",
	"vallentuna", "sigtuna", "märsta", "norrtälje", "värmdö",
}

var cities = mustWordSet(cityNames...)

// Cities returns the recognised city and municipality names.
func Cities() *Set { return cities }
