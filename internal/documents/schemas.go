package documents

import "github.com/angelmondragon/partnerhub-backend/pkg/enums"

func contractorContractSchema() Schema {
	return Schema{
		Type: enums.TemplateTypeContractorContract,
		Name: "Independent Contractor Agreement",
		Slug: "contractor-contract",
		Sections: []Section{
			{
				Title: "Parties",
				Paragraphs: []string{
					"This Independent Contractor Agreement is entered into between the Company and the Contractor named below.",
				},
				Fields: []Field{
					text("Contractor Legal Name", RoleContractor, true),
					text("Contractor Business Name", RoleContractor, false),
					text("Contractor Address", RoleContractor, true),
					text("Contractor Tax ID", RoleContractor, true),
					date("Effective Date", RoleCompany),
				},
			},
			{
				Title: "Scope and Compensation",
				Fields: []Field{
					textarea("Scope of Services", RoleCompany, true),
					number("Hourly Rate", RoleCompany, true),
					selectField("Payment Schedule", RoleCompany, "Weekly", "Bi-weekly", "Monthly", "Per milestone"),
					date("End Date", RoleCompany),
				},
			},
			signatureBlock(RoleCompany),
			signatureBlock(RoleContractor),
		},
	}
}

func ndaSchema() Schema {
	return Schema{
		Type: enums.TemplateTypeNDA,
		Name: "Mutual Non-Disclosure Agreement",
		Slug: "nda",
		Sections: []Section{
			{
				Title: "Parties",
				Paragraphs: []string{
					"Each party may disclose confidential information to the other in connection with evaluating a partnership.",
				},
				Fields: []Field{
					text("Partner Company Name", RolePartner, true),
					text("Partner Address", RolePartner, true),
					date("Effective Date", RoleCompany),
				},
			},
			{
				Title: "Term",
				Fields: []Field{
					selectField("Confidentiality Period", RoleCompany, "1 year", "2 years", "3 years", "5 years"),
					selectField("Governing State", RoleCompany, "Texas", "California", "New York", "Florida", "Delaware"),
				},
			},
			signatureBlock(RoleCompany),
			signatureBlock(RolePartner),
		},
	}
}

func loiSchema() Schema {
	return Schema{
		Type: enums.TemplateTypeLOI,
		Name: "Letter of Intent",
		Slug: "loi",
		Sections: []Section{
			{
				Title: "Partner Information",
				Paragraphs: []string{
					"This non-binding Letter of Intent records the parties' intention to deploy kiosks at the partner's venues.",
				},
				Fields: []Field{
					text("Partner Company Name", RolePartner, true),
					text("Partner Contact Name", RolePartner, true),
					text("Partner Email", RolePartner, true),
					text("Partner Phone", RolePartner, false),
				},
			},
			{
				Title: "Proposed Deployment",
				Fields: []Field{
					number("Number of Venues", RolePartner, true),
					number("Estimated Devices", RolePartner, true),
					date("Target Launch Date", RolePartner),
					selectField("Partner Type", RolePartner, "Location", "Referral", "Channel"),
					textarea("Additional Notes", RolePartner, false),
				},
			},
			signatureBlock(RolePartner),
			signatureBlock(RoleCompany),
		},
	}
}

func locationDeploymentSchema() Schema {
	return Schema{
		Type: enums.TemplateTypeLocationDeployment,
		Name: "Location Deployment Agreement",
		Slug: "location-deployment",
		Sections: []Section{
			{
				Title: "Location",
				Fields: []Field{
					text("Venue Name", RolePartner, true),
					text("Venue Address", RolePartner, true),
					text("Venue City", RolePartner, true),
					text("Venue State", RolePartner, true),
					text("Venue Postal Code", RolePartner, true),
				},
			},
			{
				Title: "Deployment Terms",
				Paragraphs: []string{
					"The Company installs and maintains the devices. The Partner provides power, network access and floor space.",
				},
				Fields: []Field{
					number("Device Count", RoleCompany, true),
					number("Revenue Share Percent", RoleCompany, true),
					number("Trial Period Days", RoleCompany, true),
					date("Installation Date", RoleCompany),
					selectField("Internet Provided By", RolePartner, "Partner", "Company"),
				},
			},
			signatureBlock(RoleCompany),
			signatureBlock(RolePartner),
		},
	}
}

func referralAgreementSchema() Schema {
	return Schema{
		Type: enums.TemplateTypeReferralAgreement,
		Name: "Referral Partner Agreement",
		Slug: "referral-agreement",
		Sections: []Section{
			{
				Title: "Referral Partner",
				Fields: []Field{
					text("Partner Legal Name", RolePartner, true),
					text("Partner Address", RolePartner, true),
					text("Partner Email", RolePartner, true),
					date("Effective Date", RoleCompany),
				},
			},
			{
				Title: "Commission",
				Paragraphs: []string{
					"Commissions are paid on venues that go live within the attribution window after a qualified referral.",
				},
				Fields: []Field{
					number("Commission Percent", RoleCompany, true),
					number("Attribution Window Days", RoleCompany, true),
					selectField("Payout Method", RolePartner, "ACH", "Wire", "PayPal", "Check"),
				},
			},
			signatureBlock(RoleCompany),
			signatureBlock(RolePartner),
		},
	}
}

func nonCompeteSchema() Schema {
	return Schema{
		Type: enums.TemplateTypeNonCompete,
		Name: "Non-Compete Agreement",
		Slug: "non-compete",
		Sections: []Section{
			{
				Title: "Parties",
				Fields: []Field{
					text("Employee Name", RoleEmployee, true),
					text("Employee Position", RoleCompany, true),
					date("Effective Date", RoleCompany),
				},
			},
			{
				Title: "Restrictions",
				Fields: []Field{
					selectField("Restriction Period", RoleCompany, "6 months", "12 months", "18 months", "24 months"),
					text("Restricted Territory", RoleCompany, true),
					textarea("Restricted Activities", RoleCompany, true),
				},
			},
			signatureBlock(RoleCompany),
			signatureBlock(RoleEmployee),
		},
	}
}

func employeeWriteupSchema() Schema {
	return Schema{
		Type: enums.TemplateTypeEmployeeWriteup,
		Name: "Employee Write-Up",
		Slug: "employee-writeup",
		Sections: []Section{
			{
				Title: "Employee",
				Fields: []Field{
					text("Employee Name", RoleCompany, true),
					text("Department", RoleCompany, false),
					text("Supervisor Name", RoleCompany, true),
					date("Incident Date", RoleCompany),
				},
			},
			{
				Title: "Incident",
				Fields: []Field{
					selectField("Violation Type", RoleCompany, "Attendance", "Conduct", "Performance", "Policy", "Safety", "Other"),
					selectField("Warning Level", RoleCompany, "Verbal", "Written", "Final", "Suspension"),
					textarea("Incident Description", RoleCompany, true),
					textarea("Corrective Action Plan", RoleCompany, true),
					textarea("Employee Comments", RoleEmployee, false),
				},
			},
			signatureBlock(RoleCompany),
			signatureBlock(RoleEmployee),
		},
	}
}

func offerLetterSchema() Schema {
	return Schema{
		Type: enums.TemplateTypeOfferLetter,
		Name: "Offer Letter",
		Slug: "offer-letter",
		Sections: []Section{
			{
				Title: "Position",
				Fields: []Field{
					text("Candidate Name", RoleCompany, true),
					text("Job Title", RoleCompany, true),
					text("Reports To", RoleCompany, true),
					date("Start Date", RoleCompany),
					selectField("Employment Type", RoleCompany, "Full-time", "Part-time", "Contract"),
				},
			},
			{
				Title: "Compensation",
				Fields: []Field{
					number("Annual Salary", RoleCompany, true),
					textarea("Benefits Summary", RoleCompany, false),
					date("Offer Expiration Date", RoleCompany),
				},
			},
			signatureBlock(RoleCompany),
			signatureBlock(RoleCandidate),
		},
	}
}

func terminationSchema() Schema {
	return Schema{
		Type: enums.TemplateTypeTermination,
		Name: "Termination Notice",
		Slug: "termination",
		Sections: []Section{
			{
				Title: "Notice",
				Fields: []Field{
					text("Recipient Name", RoleCompany, true),
					date("Notice Date", RoleCompany),
					date("Termination Effective Date", RoleCompany),
					selectField("Termination Reason", RoleCompany, "Convenience", "Breach", "Non-performance", "Mutual agreement"),
				},
			},
			{
				Title: "Details",
				Fields: []Field{
					textarea("Explanation", RoleCompany, true),
					textarea("Return of Property", RoleCompany, false),
					number("Final Payment Amount", RoleCompany, false),
				},
			},
			signatureBlock(RoleCompany),
			{
				Title: "Acknowledgement",
				Fields: []Field{
					signature("Recipient Signature", RolePartner),
					date("Acknowledgement Date", RolePartner),
				},
			},
		},
	}
}
