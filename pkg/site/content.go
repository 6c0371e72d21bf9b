// Package site renders the landing page around the forms: hero, services,
// company carousel, newsletter card, inquiry sheet and cookie banner.
package site

// Content is the editable copy of the landing page.
type Content struct {
	SiteName   string         `json:"siteName" yaml:"siteName"`
	Hero       Hero           `json:"hero" yaml:"hero"`
	Services   []Service      `json:"services" yaml:"services"`
	Carousel   CarouselConfig `json:"carousel" yaml:"carousel"`
	Newsletter Newsletter     `json:"newsletter" yaml:"newsletter"`
	Cookies    CookieBanner   `json:"cookies" yaml:"cookies"`
}

// Hero is the top section with the inquiry call to action.
type Hero struct {
	Heading    string `json:"heading" yaml:"heading"`
	Subheading string `json:"subheading" yaml:"subheading"`
	CTALabel   string `json:"ctaLabel" yaml:"ctaLabel"`
	CTAHref    string `json:"ctaHref" yaml:"ctaHref"`
}

// Service is one card of the services grid. Icon names an entry of the icon
// set; IconSVG, when set, replaces it and is sanitized before rendering.
type Service struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
	IconSVG     string `json:"iconSvg,omitempty" yaml:"iconSvg,omitempty"`
}

// CarouselConfig describes the company logo carousel.
type CarouselConfig struct {
	Heading string   `json:"heading" yaml:"heading"`
	Count   int      `json:"count" yaml:"count"`
	BaseURL string   `json:"baseUrl" yaml:"baseUrl"`
	Images  []string `json:"images" yaml:"images"`
	Alt     string   `json:"alt" yaml:"alt"`
	Loop    bool     `json:"loop" yaml:"loop"`
}

// Newsletter is the copy around the subscription form.
type Newsletter struct {
	Heading     string `json:"heading" yaml:"heading"`
	Description string `json:"description" yaml:"description"`
	HelpText    string `json:"helpText" yaml:"helpText"`
	Placeholder string `json:"placeholder" yaml:"placeholder"`
	Thanks      string `json:"thanks" yaml:"thanks"`
}

// CookieBanner is the consent dialog copy.
type CookieBanner struct {
	Title       string `json:"title" yaml:"title"`
	Text        string `json:"text" yaml:"text"`
	PolicyURL   string `json:"policyUrl" yaml:"policyUrl"`
	PolicyLabel string `json:"policyLabel" yaml:"policyLabel"`
	RejectLabel string `json:"rejectLabel" yaml:"rejectLabel"`
	AcceptLabel string `json:"acceptLabel" yaml:"acceptLabel"`
}

// DefaultContent returns the stock copy.
func DefaultContent() Content {
	return Content{
		SiteName: "Lead Studio",
		Hero: Hero{
			Heading:    "Software that moves your business forward",
			Subheading: "From a first MVP to integrated, secure platforms, we build what your team needs next.",
			CTALabel:   "Send inquiry",
			CTAHref:    "/inquiry",
		},
		Services: []Service{
			{
				Title:       "MVP development",
				Description: "Develop an MVP to test and attract investors for your business idea, showcasing its potential in a concise, impactful manner.",
				Icon:        "material-symbols:lightbulb-outline-rounded",
			},
			{
				Title:       "Automation of internal processes",
				Description: "Automate the internal processes of your business and increase its efficiency",
				Icon:        "carbon:reference-architecture",
			},
			{
				Title:       "Web and mobile app development",
				Description: "Create a web or mobile app to attract new customers and make your service more convenient for them",
				Icon:        "fluent:view-desktop-mobile-20-regular",
			},
			{
				Title:       "Data Analytics and Business Intelligence",
				Description: "Drive success with strategic insights. Our services span data analytics, business intelligence, and informed decision-making for clients.",
				Icon:        "tabler:device-analytics",
			},
			{
				Title:       "Cybersecurity Consulting",
				Description: "Fortify digital assets with assessments, testing, and policy development. Our cybersecurity services protect businesses from evolving cyber threats.",
				Icon:        "ic:round-security",
			},
			{
				Title:       "Custom Software Integration",
				Description: "Optimize operations by seamlessly integrating software systems. From CRM to ERP, our services ensure efficient data flow and processes.",
				Icon:        "gridicons:custom-post-type",
			},
		},
		Carousel: CarouselConfig{
			Heading: "Associated with companies like",
			Count:   10,
			BaseURL: "/images/companies/",
			Images:  []string{"itgix.jpeg", "haemimont.jpeg", "trading212.png"},
			Alt:     "Company",
			Loop:    true,
		},
		Newsletter: Newsletter{
			Heading:     "Subscribe to our newsletter",
			Description: "Get the latest news and updates from our team",
			HelpText:    "We'll never share your email with anyone else.",
			Placeholder: "johndoe@gmail.com",
			Thanks:      "Thanks for subscribing!",
		},
		Cookies: CookieBanner{
			Title:       "Cookies Policy",
			Text:        "We use cookies to ensure you get the best experience on our website.",
			PolicyURL:   "/privacy-policy",
			PolicyLabel: "Learn more",
			RejectLabel: "Reject All",
			AcceptLabel: "Accept All",
		},
	}
}
