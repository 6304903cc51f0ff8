package knowledge

import "github.com/colormebooth/go-chat-gateway/internal/domain"

// BuiltinEntries returns the compiled-in FAQ set. It is the fallback when no
// knowledge file is configured, and the seed content mirrors the answers the
// sales team gives by hand. Callers receive a fresh slice on every call.
func BuiltinEntries() []domain.KnowledgeBaseEntry {
	return []domain.KnowledgeBaseEntry{
		{
			ID:       "pricing-general",
			Category: "pricing",
			Question: "How much does ColorMe Booth cost?",
			Answer: "Our pricing varies by event type and package. We offer two main packages: " +
				"the Sketch Pass (starter package) and the Masterpiece Bundle (premium package). " +
				"Please fill out the contact form with your event details for a customized quote.",
			Keywords: []string{"price", "cost", "rate", "how much", "pricing", "affordable"},
		},
		{
			ID:       "pricing-kiddie",
			Category: "pricing",
			Question: "How much for kiddie parties?",
			Answer: "For kiddie parties, we offer the Sketch Pass starter package and the Masterpiece " +
				"Bundle which includes premium 8-color crayon sets for every guest. Contact us for " +
				"specific pricing based on your party size and duration.",
			EventTypes: []domain.EventType{domain.EventKiddieParty},
			Keywords:   []string{"kiddie", "birthday", "kids", "children", "price", "cost"},
		},
		{
			ID:       "pricing-wedding",
			Category: "pricing",
			Question: "How much for weddings?",
			Answer: "Wedding packages include the Reception Essentials (4 hours) and the Grand Wedding " +
				"Bundle (5 hours) with premium gold-crayon sets for every guest. Let us know your " +
				"wedding date for a detailed quote.",
			EventTypes: []domain.EventType{domain.EventWedding},
			Keywords:   []string{"wedding", "bride", "groom", "marriage", "price", "cost"},
		},
		{
			ID:       "pricing-debut",
			Category: "pricing",
			Question: "How much for debuts?",
			Answer: "Debut packages include the Rose Garden Package and the Grand Debut Bundle with " +
				"rose gold crayon sets. Perfect for 18th birthdays! Share your debut date for a " +
				"custom quote.",
			EventTypes: []domain.EventType{domain.EventDebut},
			Keywords:   []string{"debut", "18th birthday", "eighteenth", "quinceanera", "price", "cost"},
		},
		{
			ID:       "pricing-corporate",
			Category: "pricing",
			Question: "How much for corporate events?",
			Answer: "Corporate packages include Team Building Essentials and the Premium Brand Bundle " +
				"with full customization. We offer special corporate rates. Tell us about your event " +
				"size and requirements.",
			EventTypes: []domain.EventType{domain.EventCorporate},
			Keywords:   []string{"corporate", "company", "team building", "office", "business", "price", "cost"},
		},
		{
			ID:       "service-area",
			Category: "location",
			Question: "Where do you serve?",
			Answer: "We primarily serve Metro Manila including Makati, BGC, Taguig, Quezon City, " +
				"Alabang, and surrounding areas. We also travel to Tagaytay, Cavite, and other " +
				"locations for an additional travel fee.",
			Keywords: []string{"location", "area", "where", "serve", "travel", "metro manila"},
		},
		{
			ID:       "how-it-works",
			Category: "process",
			Question: "How does ColorMe Booth work?",
			Answer: "It's simple! 1) SNAP - Our roamer finds your guests with no lines. 2) SKETCH - AI " +
				"instantly converts photos into beautiful line art. 3) STYLE - Guests color their " +
				"custom pages with premium crayons.",
			Keywords: []string{"how", "work", "process", "what is", "explain"},
		},
		{
			ID:       "packages",
			Category: "packages",
			Question: "What packages do you offer?",
			Answer: "We offer two main packages: 1) Sketch Pass - Includes roamer service, unlimited " +
				"prints, and communal coloring station. 2) Masterpiece Bundle - Adds premium crayon " +
				"sets for every guest, custom branding, and digital gallery with highlights reel.",
			Keywords: []string{"package", "bundle", "what include", "included", "features"},
		},
		{
			ID:       "booking",
			Category: "booking",
			Question: "How do I book ColorMe Booth?",
			Answer: "To check availability and book, please fill out the contact form with your event " +
				"date, venue, and details. We'll get back to you within 24-48 hours with availability " +
				"and a customized quote.",
			Keywords: []string{"book", "reserve", "schedule", "availability", "how to book"},
		},
		{
			ID:       "duration",
			Category: "service",
			Question: "How long is the service?",
			Answer: "Our standard packages are 3-5 hours depending on the event type. Extensions are " +
				"available at ₱2,000-₱3,000 per hour depending on your event type.",
			Keywords: []string{"long", "duration", "hours", "time", "how long"},
		},
		{
			ID:       "crayons",
			Category: "features",
			Question: "Do you provide crayons?",
			Answer: "Yes! Our Masterpiece Bundle includes premium crayon sets for every guest. We offer " +
				"standard 8-color sets, gold sets for weddings, and rose gold sets for debuts. " +
				"Corporate events can be fully branded.",
			Keywords: []string{"crayon", "coloring", "supplies", "materials", "keepsake"},
		},
		{
			ID:       "branding",
			Category: "features",
			Question: "Can you customize with my logo/theme?",
			Answer: "Yes! We can add custom borders, event logos, names, and dates to every print. " +
				"Corporate events get full brand customization with logos and company colors.",
			Keywords: []string{"logo", "brand", "customize", "personalized", "theme", "design"},
		},
		{
			ID:       "capacity",
			Category: "service",
			Question: "How many guests can you accommodate?",
			Answer: "Our roamer service can handle unlimited guests! There are no lines - we move " +
				"around your event finding guests. The more guests, the more memories created!",
			Keywords: []string{"capacity", "guests", "people", "many", "limit", "maximum"},
		},
		{
			ID:       "setup",
			Category: "logistics",
			Question: "What do you need for setup?",
			Answer: "We need a table space for the coloring station (about 6ft table preferred). Our " +
				"roamer is wireless and mobile, so we can move around your venue freely!",
			Keywords: []string{"setup", "requirement", "space", "table", "power", "equipment"},
		},
		{
			ID:       "payment",
			Category: "booking",
			Question: "What are your payment terms?",
			Answer: "We require a 50% deposit to reserve your date, with the remaining 50% due on the " +
				"day of the event. We accept bank transfer, GCash, and credit cards.",
			Keywords: []string{"payment", "deposit", "pay", "terms", "balance", "gcash"},
		},
	}
}
