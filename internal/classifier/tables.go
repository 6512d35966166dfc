package classifier

// CategoryRule maps merchant keywords to an expense category label.
type CategoryRule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// Category labels of the default table.
const (
	CategoryWebHosting     = "Web Hosting"
	CategorySoftware       = "Software"
	CategoryEntertainment  = "Entertainment"
	CategoryOfficeSupplies = "Office Supplies"
	CategoryMeals          = "Meals"
	CategoryTravel         = "Travel/Lodge"
	CategoryGroceries      = "Groceries"
	CategoryTransportation = "Transportation"
	CategoryUtilities      = "Utilities"
	CategoryOther          = "Other"
)

// DefaultRevenueKeywords signal incoming funds.
func DefaultRevenueKeywords() []string {
	return []string{
		"PAYMENT", "CREDIT", "REFUND", "RETURN", "CASH BACK", "CASHBACK",
		"REWARD", "DEPOSIT", "REIMBURSEMENT", "REVERSAL", "ADJUSTMENT",
		"STATEMENT CREDIT", "ZELLE FROM", "VENMO FROM", "PAYPAL FROM",
		"WIRE FROM", "ACH CREDIT", "DIRECT DEPOSIT", "TRANSFER FROM",
	}
}

// DefaultCategoryRules is the expense table in priority order. A group
// must come before any broader group that would shadow it: Amazon Prime
// (Entertainment) precedes Amazon (Office Supplies), Amazon Web Services
// precedes both, and Uber Eats (Meals) precedes Uber (Transportation).
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{CategoryWebHosting, []string{
			"GODADDY", "BLUEHOST", "HOSTGATOR", "SQUARESPACE", "WIX.COM", "NAMECHEAP",
			"DIGITALOCEAN", "AMAZON WEB SERVICES", "AWS.AMAZON", "HEROKU", "NETLIFY",
			"VERCEL", "SITEGROUND", "DREAMHOST", "CLOUDFLARE", "SHOPIFY",
		}},
		{CategorySoftware, []string{
			"ADOBE", "MICROSOFT", "MSFT", "GOOGLE WORKSPACE", "GSUITE", "DROPBOX",
			"SLACK", "ZOOM.US", "QUICKBOOKS", "INTUIT", "CANVA", "GITHUB",
			"ATLASSIAN", "NOTION", "OPENAI", "MAILCHIMP", "HUBSPOT", "DOCUSIGN",
		}},
		{CategoryEntertainment, []string{
			"AMAZON PRIME", "PRIME VIDEO", "NETFLIX", "SPOTIFY", "HULU", "DISNEY",
			"HBO", "YOUTUBE", "APPLE TV", "PARAMOUNT", "STEAMGAMES", "CINEMA",
			"AMC THEATRES", "TICKETMASTER",
		}},
		{CategoryOfficeSupplies, []string{
			"AMAZON", "AMZN", "STAPLES", "OFFICE DEPOT", "OFFICEMAX", "BEST BUY",
			"COSTCO BUSINESS", "ULINE", "VISTAPRINT",
		}},
		{CategoryMeals, []string{
			"RESTAURANT", "STARBUCKS", "MCDONALD", "CHIPOTLE", "DOORDASH",
			"UBER EATS", "GRUBHUB", "CAFE", "COFFEE", "PIZZA", "DUNKIN",
			"SUBWAY", "BURGER", "TACO", "DINER", "GRILL", "BAKERY", "PANERA",
		}},
		{CategoryTravel, []string{
			"HOTEL", "MARRIOTT", "HILTON", "HYATT", "AIRBNB", "EXPEDIA",
			"BOOKING.COM", "MOTEL", "HOLIDAY INN", "DELTA AIR", "UNITED AIRLINES",
			"AMERICAN AIRLINES", "SOUTHWEST", "JETBLUE", "ALASKA AIR", "AIRLINE",
		}},
		{CategoryGroceries, []string{
			"WHOLE FOODS", "WHOLEFDS", "TRADER JOE", "KROGER", "SAFEWAY", "PUBLIX",
			"ALDI", "COSTCO", "WALMART", "TARGET", "GROCERY", "SPROUTS", "WEGMANS",
			"H-E-B",
		}},
		{CategoryTransportation, []string{
			"UBER", "LYFT", "SHELL", "CHEVRON", "EXXON", "SUNOCO",
			"VALERO", "PARKING", "TOLL", "GAS STATION", "FUEL", "AMTRAK", "METRO",
		}},
		{CategoryUtilities, []string{
			"COMCAST", "XFINITY", "VERIZON", "AT&T", "T-MOBILE", "SPECTRUM",
			"ELECTRIC", "WATER", "PG&E", "CON EDISON", "DUKE ENERGY", "INTERNET",
			"WASTE MANAGEMENT",
		}},
		{CategoryOther, []string{
			"USPS", "FEDEX", "UPS STORE", "POSTAGE", "SERVICE CHARGE", "LATE FEE",
			"INTEREST CHARGE", "ANNUAL FEE", "DMV",
		}},
	}
}
