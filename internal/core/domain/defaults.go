package domain

const unsplashParams = "?q=80&w=1600&auto=format&fit=crop"

// DefaultAbout returns the seed about-page copy.
func DefaultAbout() About {
	return About{
		Intro: "At ShubhRaaj Interiors, we believe every space tells a story. " +
			"Our design philosophy blends timeless elegance with functional precision, " +
			"crafting interiors that resonate with personality and purpose.",
		Mission:    "Deliver bespoke interiors that balance aesthetics and comfort, tailored to every lifestyle.",
		Vision:     "To be a benchmark for luxury interiors through innovation, craftsmanship, and empathy.",
		Philosophy: "Minimal, warm, and modern—using textures, natural light, and curated materials to elevate experiences.",
	}
}

// DefaultProjects returns the seed portfolio.
func DefaultProjects() []Project {
	return []Project{
		{
			Slug:        "luxury-living-suite",
			Title:       "Luxury Living Suite",
			Description: "A warm, elegant living suite featuring textured walls, brass accents, and curated lighting.",
			Photos: []Photo{
				{URL: "https://images.unsplash.com/photo-1507473885765-e6ed057f782c" + unsplashParams},
				{URL: "https://images.unsplash.com/photo-1499955085172-a104c9463ece" + unsplashParams},
				{URL: "https://images.unsplash.com/photo-1505693416388-ac5ce068fe85" + unsplashParams},
			},
		},
		{
			Slug:        "modern-office-lounge",
			Title:       "Modern Office Lounge",
			Description: "Refined workspace lounge with muted palette and linear textures for calm productivity.",
			Photos: []Photo{
				{URL: "https://images.unsplash.com/photo-1549187774-b4e9b0445b41" + unsplashParams},
				{URL: "https://images.unsplash.com/photo-1519710164239-da123dc03ef4" + unsplashParams},
			},
		},
	}
}

// DefaultTestimonials returns the seed testimonials.
func DefaultTestimonials() []Testimonial {
	return []Testimonial{
		{Name: "Aarav Mehta", Rating: 5, Text: "Exceptional attention to detail. Our living room feels luxurious yet warm."},
		{Name: "Ishita Kapoor", Rating: 5, Text: "From concept to execution, the team delivered beyond expectations."},
		{Name: "Rahul Verma", Rating: 4, Text: "Great design sensibility and timely delivery. Highly recommend."},
	}
}

// DefaultMapURLs returns the seed office map embeds.
func DefaultMapURLs() []MapLocation {
	embed := func(q string) string {
		return "https://maps.google.com/maps?q=" + q + "&t=&z=12&ie=UTF8&iwloc=&output=embed"
	}
	return []MapLocation{
		{Key: "nashik", Name: "Nashik", URL: embed("Nashik")},
		{Key: "ahilyanagar", Name: "Ahilyanagar", URL: embed("Ahmednagar")},
		{Key: "pune", Name: "Pune", URL: embed("Pune")},
	}
}

// DefaultContact returns the seed contact details.
func DefaultContact() Contact {
	return Contact{
		Phone: "+91 98765 43210",
		Email: "hello@shubhraaj.in",
		Socials: Socials{
			Instagram: "https://instagram.com/",
			Facebook:  "https://facebook.com/",
			LinkedIn:  "https://linkedin.com/",
		},
		MapURLs: DefaultMapURLs(),
	}
}

// DefaultSnapshot returns the content used when no cache exists yet.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		About:        DefaultAbout(),
		Projects:     DefaultProjects(),
		Testimonials: DefaultTestimonials(),
		Contact:      DefaultContact(),
	}
}
