package agent

// AllowTerms marks a message as being about Dubai real estate. Multi-word
// entries match as whole phrases.
var AllowTerms = []string{
	// property kinds
	"property", "properties", "real estate", "realestate", "apartment", "flat",
	"villa", "studio", "penthouse", "house", "home", "townhouse", "duplex",
	"loft", "condo", "residence", "residential", "commercial", "office",
	"shop", "retail", "warehouse", "plot", "land", "building", "tower", "unit",
	"bedroom", "bhk", "bathroom", "balcony", "furnished", "unfurnished",
	"sqft", "square feet", "floor plan", "hotel apartment",

	// transactions
	"rent", "rental", "renting", "lease", "tenant", "tenancy", "landlord",
	"buy", "buying", "purchase", "sell", "selling", "sale", "price", "budget",
	"aed", "mortgage", "down payment", "deposit", "installment", "payment plan",
	"rental yield", "roi", "valuation", "resale", "cheque",

	// legal and market
	"ejari", "rera", "dld", "title deed", "freehold", "leasehold", "off plan",
	"handover", "developer", "emaar", "damac", "nakheel", "sobha", "meraas",
	"aldar", "azizi", "ellington", "agent", "broker", "brokerage", "viewing",
	"listing", "amenities", "amenity", "pool", "gym", "parking", "maintenance",
	"service charge", "community", "neighbourhood", "neighborhood", "golden visa",

	// neighbourhoods
	"downtown", "dubai marina", "marina", "palm jumeirah", "jumeirah", "jbr",
	"jlt", "jvc", "jumeirah village circle", "jumeirah lake towers",
	"business bay", "deira", "bur dubai", "al barsha", "barsha", "dubai hills",
	"arabian ranches", "emirates hills", "mirdif", "karama", "silicon oasis",
	"sports city", "motor city", "al quoz", "dubai south", "creek harbour",
	"dubai creek", "difc", "meydan", "jebel ali", "damac hills", "town square",
	"al furjan", "discovery gardens", "international city", "the springs",
	"the meadows", "the greens", "city walk", "bluewaters", "al nahda",
	"al qusais", "mudon", "dubailand", "burj",

	// arabic
	"عقار", "عقارات", "شقة", "فيلا", "إيجار", "شراء", "بيع", "منزل", "سعر",

	// tamil
	"வீடு", "வாடகை", "சொத்து", "விலை", "அடுக்குமாடி", "நிலம்",
}

// DenyTerms marks topics the assistant declines and redirects.
var DenyTerms = []string{
	// vehicles
	"car", "vehicle", "lamborghini", "ferrari", "porsche", "bmw", "mercedes",
	"toyota", "tesla", "audi", "motorcycle", "motorbike", "truck", "suv",
	"horsepower", "driving license",

	// finance and crypto
	"bitcoin", "ethereum", "crypto", "cryptocurrency", "blockchain", "nft",
	"stock", "stock market", "forex", "trading", "dividend", "nasdaq",
	"dow jones", "dogecoin", "binance",

	// politics and religion
	"election", "president", "politics", "political", "parliament",
	"religion", "religious", "church", "temple", "prayer", "bible", "quran",
	"war", "military", "protest",

	// technology
	"iphone", "android", "smartphone", "laptop", "computer", "programming",
	"python", "javascript", "software", "coding", "chatgpt",
	"artificial intelligence", "playstation", "xbox", "gadget",

	// travel
	"flight", "airline", "passport", "tourism", "tourist", "sightseeing",
	"cruise", "desert safari", "vacation", "holiday",

	// food
	"recipe", "cooking", "restaurant", "pizza", "burger", "sushi", "biryani",
	"cuisine", "dessert", "diet",

	// sports and entertainment
	"football", "soccer", "cricket", "basketball", "tennis", "golf", "sport",
	"movie", "film", "netflix", "music", "song", "concert", "celebrity",
	"game", "gaming", "anime",

	// health
	"doctor", "medicine", "disease", "symptom", "covid", "vaccine", "fever",
	"diabetes", "therapy",

	// education
	"homework", "exam", "university", "college", "tuition", "math", "physics",
	"chemistry", "essay",
}
