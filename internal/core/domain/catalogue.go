package domain

var templates = []Template{
	{
		ID:          "employment",
		Title:       "Employment Contract",
		Description: "Avoid Fair Work fines with compliant contracts for full-time, part-time, or casual staff.",
		Urgency:     "Avoid $66,600 Fair Work fines",
		RiskTier:    RiskLevelHigh,
		Compliance:  []string{"Fair Work Act 2009", "Modern Awards", "NES"},
		Fields: []string{"businessName", "abn", "employeeName", "position", "startDate",
			"salary", "workLocation", "employmentType", "awardClassification"},
		Clauses: []OptionalClause{
			{
				ID:          "probation",
				Title:       "Probationary Period",
				Description: "A six month probation during which either party may end employment on one week's notice.",
				Content: "The first six (6) months of employment are a probationary period. During this period " +
					"either party may terminate employment by giving one (1) week's written notice, or payment " +
					"in lieu, subject to the National Employment Standards.",
			},
			{
				ID:          "restraint",
				Title:       "Post-Employment Restraint",
				Description: "Restricts soliciting clients or staff for a period after employment ends.",
				Content: "For twelve (12) months after the employment ends, the Employee must not solicit any " +
					"client or employee of the Employer with whom the Employee had dealings in the final twelve " +
					"(12) months of employment. Each restraint is severable and reads down to the extent necessary " +
					"to be enforceable.",
			},
		},
	},
	{
		ID:          "contractor",
		Title:       "Independent Contractor Agreement",
		Description: "Clearly define your relationship with contractors to avoid sham contracting risks.",
		Urgency:     "Critical for ATO/FWO compliance",
		RiskTier:    RiskLevelHigh,
		Compliance:  []string{"ATO Guidelines", "Independent Contractors Act 2006"},
		Fields: []string{"businessName", "abn", "contractorName", "contractorAbn", "services",
			"term", "fees", "intellectualProperty"},
		Clauses: []OptionalClause{
			{
				ID:          "insurance",
				Title:       "Contractor Insurance",
				Description: "Requires the contractor to hold public liability and professional indemnity cover.",
				Content: "The Contractor must hold and maintain public liability insurance of at least $10,000,000 " +
					"and professional indemnity insurance of at least $2,000,000 for the term of this agreement, " +
					"and provide certificates of currency on request.",
			},
			{
				ID:          "substitution",
				Title:       "Right of Substitution",
				Description: "Allows the contractor to delegate work, a key indicator of genuine contracting.",
				Content: "The Contractor may engage a suitably qualified substitute or subcontractor to perform " +
					"the Services, at the Contractor's own cost, provided the Contractor remains responsible for " +
					"the quality of the Services.",
			},
		},
	},
	{
		ID:          "service",
		Title:       "Client Service Agreement",
		Description: "Set clear expectations for service delivery, payment terms, and liability.",
		Urgency:     "Essential for service-based businesses",
		RiskTier:    RiskLevelMedium,
		Compliance:  []string{"Australian Consumer Law (ACL)"},
		Fields: []string{"businessName", "abn", "clientName", "services", "fees", "paymentTerms",
			"term", "limitationOfLiability"},
		Clauses: []OptionalClause{
			{
				ID:          "late-payment",
				Title:       "Late Payment Interest",
				Description: "Charges interest on overdue invoices.",
				Content: "Overdue amounts accrue interest at the rate of two percent (2%) per month, calculated " +
					"daily from the due date until payment is received in full.",
			},
			{
				ID:          "dispute-resolution",
				Title:       "Dispute Resolution",
				Description: "Requires negotiation and mediation before court proceedings.",
				Content: "The parties must attempt to resolve any dispute by good faith negotiation for fourteen " +
					"(14) days, then by mediation administered by the Resolution Institute, before commencing " +
					"court proceedings, except for urgent interlocutory relief.",
			},
		},
	},
	{
		ID:          "privacy",
		Title:       "Privacy Policy",
		Description: "Comply with the Privacy Act 1988 by informing users how you handle their data.",
		Urgency:     "Required for most online businesses",
		RiskTier:    RiskLevelHigh,
		Compliance:  []string{"Privacy Act 1988", "APPs"},
		Fields:      []string{"businessName", "websiteUrl", "dataCollected", "dataUsage", "contactEmail"},
		Clauses: []OptionalClause{
			{
				ID:          "overseas-disclosure",
				Title:       "Overseas Disclosure",
				Description: "Discloses that personal information may be stored offshore (APP 8).",
				Content: "We may disclose personal information to service providers located outside Australia, " +
					"including cloud hosting providers. We take reasonable steps to ensure those recipients handle " +
					"personal information consistently with the Australian Privacy Principles.",
			},
			{
				ID:          "cookies",
				Title:       "Cookies and Analytics",
				Description: "Explains the use of cookies and analytics tools.",
				Content: "Our website uses cookies and analytics tools to understand how visitors use the site. " +
					"You can disable cookies in your browser settings, although some features may not function.",
			},
		},
	},
	{
		ID:          "website-terms",
		Title:       "Website Terms of Use",
		Description: "Protect your intellectual property and limit your liability for your website content.",
		Urgency:     "Protects your online assets",
		RiskTier:    RiskLevelMedium,
		Compliance:  []string{"Copyright Act 1968", "ACL"},
		Fields:      []string{"businessName", "websiteUrl", "jurisdiction", "limitationOfLiability", "intellectualProperty"},
		Clauses: []OptionalClause{
			{
				ID:          "user-content",
				Title:       "User Generated Content",
				Description: "Licenses content users post and reserves the right to remove it.",
				Content: "By posting content on the website you grant us a non-exclusive, royalty-free licence to " +
					"use, reproduce and display that content. We may remove any content at our discretion.",
			},
		},
	},
	{
		ID:          "nda",
		Title:       "Non-Disclosure Agreement",
		Description: "Protect your confidential business information when sharing it with others.",
		Urgency:     "Critical when sharing secrets",
		RiskTier:    RiskLevelMedium,
		Compliance:  []string{"Contract Law"},
		Fields:      []string{"disclosingParty", "receivingParty", "effectiveDate", "confidentialInformation", "term"},
		Clauses: []OptionalClause{
			{
				ID:          "mutual",
				Title:       "Mutual Obligations",
				Description: "Makes confidentiality obligations apply to both parties.",
				Content: "The obligations in this agreement apply mutually, and each party is both a Disclosing " +
					"Party and a Receiving Party in respect of Confidential Information it discloses or receives.",
			},
			{
				ID:          "return-of-materials",
				Title:       "Return of Materials",
				Description: "Requires return or destruction of confidential material on request.",
				Content: "On written request, the Receiving Party must promptly return or destroy all materials " +
					"containing Confidential Information and certify in writing that it has done so.",
			},
		},
	},
}

// Templates returns the template catalogue in display order.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// LookupTemplate returns the template with the given ID.
func LookupTemplate(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
