package classification

// DefaultRules returns the built-in merchant rules.
func DefaultRules() []Rule {
	return []Rule{
		// Income and transfers
		{
			Name:     "Direct Deposit",
			Category: "Savings",
			Pattern:  `\b(DIRECTDEP|DIRECT\s*DEP|DIR\s*DEP|PAYROLL|SALARY|WAGES)\b`,
			Priority: 100,
		},
		{
			Name:     "Savings Transfer",
			Category: "Savings",
			Pattern:  `\b(TO\s*SAVINGS|SAVINGS\s*TRANSFER|401K|IRA|ROTH|BROKERAGE|VANGUARD|FIDELITY)\b`,
			Priority: 95,
		},

		// Housing
		{
			Name:     "Rent and Mortgage",
			Category: "Housing",
			Pattern:  `\b(RENT|MORTGAGE|HOA|LANDLORD|PROPERTY\s*MGMT|APARTMENTS?)\b`,
			Priority: 90,
		},

		// Food delivery beats the ride-hailing rule below
		{
			Name:     "Food Delivery",
			Category: "Food",
			Pattern:  `\b(UBER\s*EATS|DOORDASH|GRUBHUB|INSTACART|POSTMATES)\b`,
			Priority: 85,
		},

		{
			Name:     "Utilities",
			Category: "Utilities",
			Pattern:  `\b(ELECTRIC|POWER\s*CO|WATER|SEWER|GAS\s*CO|COMCAST|XFINITY|VERIZON|AT\s*&\s*T|T-MOBILE|INTERNET|UTILITY|UTILITIES)\b`,
			Priority: 80,
		},
		{
			Name:     "Transport",
			Category: "Transport",
			Pattern:  `\b(UBER|LYFT|SHELL|CHEVRON|EXXON|MOBIL|BP|GAS\s*STATION|FUEL|PARKING|TOLL|TRANSIT|METRO|AMTRAK|AIRLINES?)\b`,
			Priority: 70,
		},
		{
			Name:     "Health",
			Category: "Health",
			Pattern:  `\b(PHARMACY|CVS|WALGREENS|DENTAL|DENTIST|DOCTOR|CLINIC|HOSPITAL|MEDICAL|GYM|FITNESS)\b`,
			Priority: 65,
		},
		{
			Name:     "Groceries and Dining",
			Category: "Food",
			Pattern:  `\b(GROCERY|GROCERIES|SAFEWAY|KROGER|TRADER\s*JOE'?S|WHOLE\s*FOODS|RESTAURANT|CAFE|COFFEE|STARBUCKS|PIZZA|MCDONALD'?S|CHIPOTLE|BAKERY)\b`,
			Priority: 60,
		},
		{
			Name:     "Entertainment",
			Category: "Entertainment",
			Pattern:  `\b(NETFLIX|SPOTIFY|HULU|DISNEY|CINEMA|THEATER|THEATRE|STEAM|PLAYSTATION|XBOX|TICKETMASTER|CONCERT)\b`,
			Priority: 55,
		},
		{
			Name:     "Shopping",
			Category: "Shopping",
			Pattern:  `\b(AMAZON|AMZN|TARGET|WALMART|COSTCO|BEST\s*BUY|IKEA|ETSY|EBAY)\b`,
			Priority: 40,
		},
	}
}
