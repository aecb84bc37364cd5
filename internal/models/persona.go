package models

// Persona is the fixed identity the influencer writes as.
type Persona struct {
	Name               string   `json:"name"`
	Age                int      `json:"age"`
	Profession         string   `json:"profession"`
	Interests          []string `json:"interests"`
	CommunicationStyle string   `json:"communicationStyle"`
}

func DefaultPersona() Persona {
	return Persona{
		Name:       "Nova Anderson",
		Age:        28,
		Profession: "Tech Innovation Consultant",
		Interests: []string{
			"Sustainable Technology",
			"Digital Wellness",
			"Future of Work",
			"AI Ethics",
		},
		CommunicationStyle: "Professional yet approachable, with a hint of tech humor",
	}
}
