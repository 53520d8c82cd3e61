package site

// Copy for the home page and the per-service process pages.

type Step struct {
	Title       string
	Description string
}

type Timeline struct {
	Heading    string
	Subheading string
	BackLabel  string
	Steps      []Step
	CTAHeading string
}

type Link struct {
	Label   string
	Path    string
	Primary bool
}

type Service struct {
	Title   string
	Summary string
	Bullets []string
	Links   []Link
	Hot     bool
}

type Benefit struct {
	Title string
	Icon  string // SVG path data
	Items []string
}

var Hero = struct {
	Heading    string
	Subheading string
	Button     string
}{
	Heading:    "Free Up Time, Reduce Cost, Scale Faster.",
	Subheading: "Like hiring 4 assistants that work 24/7 for the price of one.",
	Button:     "I want this",
}

const ServicesHeading = "We deploy AI that solves:"

var Services = []Service{
	{
		Title: "WhatsApp Customer Service",
		Hot:   true,
		Bullets: []string{
			"24/7 automated responses",
			"Multilingual and multi-dialect capabilities",
			"Seamless human handoff",
			"Knowledge base integration",
			"Understands how your clients interact",
			"Schedules appointments and gathers client data",
		},
		Links: []Link{
			{Label: "What this looks like", Path: "/WhatsAppDemo/"},
			{Label: "How this usually goes", Path: "/WhatsAppTimeline/", Primary: true},
		},
	},
	{
		Title: "Custom Website",
		Bullets: []string{
			"Responsive design for all devices",
			"SEO optimization",
			"Modern UI/UX",
			"AI integration",
			"Content management system",
			"Analytics and performance tracking",
		},
		Links: []Link{
			{Label: "What this looks like", Path: "/WebsiteDemo/"},
			{Label: "How this usually goes", Path: "/WebsiteTimeline/", Primary: true},
		},
	},
	{
		Title:   "Custom Plan",
		Summary: "We create tailored AI solutions designed specifically for your business needs and challenges.",
		Bullets: []string{
			"Personalized consultation",
			"Custom AI development",
			"Integration with existing systems",
			"Ongoing support and optimization",
			"Scalable solutions that grow with you",
		},
		Links: []Link{
			{Label: "How this usually goes", Path: "/CustomPlanTimeline/", Primary: true},
		},
	},
}

const WhyHeading = "Why Choose Us"

var Benefits = []Benefit{
	{
		Title: "Fast Implementation",
		Icon:  "M13 10V3L4 14h7v7l9-11h-7z",
		Items: []string{
			"Quick integration with existing systems",
			"Minimal disruption to operations",
			"Immediate ROI visibility",
		},
	},
	{
		Title: "Proven Results",
		Icon:  "M9 12l2 2 4-4m5.618-4.016A11.955 11.955 0 0112 2.944a11.955 11.955 0 01-8.618 3.04A12.02 12.02 0 003 9c0 5.591 3.824 10.29 9 11.622 5.176-1.332 9-6.03 9-11.622 0-1.042-.133-2.052-.382-3.016z",
		Items: []string{
			"AI WhatsApp integration for Transarabianseas (Saudi Arabia)",
			"40% reduction in operational costs",
			"24/7 customer service availability",
			"95% customer satisfaction rate",
		},
	},
	{
		Title: "Expert Support",
		Icon:  "M17 20h5v-2a3 3 0 00-5.356-1.857M17 20H7m10 0v-2c0-.656-.126-1.283-.356-1.857M7 20H2v-2a3 3 0 015.356-1.857M7 20v-2c0-.656.126-1.283.356-1.857m0 0a5.002 5.002 0 019.288 0M15 7a3 3 0 11-6 0 3 3 0 016 0zm6 3a2 2 0 11-4 0 2 2 0 014 0zM7 10a2 2 0 11-4 0 2 2 0 014 0z",
		Items: []string{
			"Dedicated implementation manager",
			"Ongoing optimization and updates",
			"Regular performance reviews",
		},
	},
}

var Guarantee = struct {
	Heading string
	Body    string
	Button  string
	Icon    string
}{
	Heading: "30-Day Money Back Guarantee",
	Body:    "We're so confident in our AI solutions that if you don't see measurable improvements within 30 days, we'll refund your investment. No questions asked.",
	Button:  "Get Started Risk-Free",
	Icon:    "M9 12l2 2 4-4m6 2a9 9 0 11-18 0 9 9 0 0118 0z",
}

const ContactHeading = "Your business is already smart. It's time for your operations to catch up."

const (
	ContactAnchor  = "contact-section"
	ServicesAnchor = "services"
	ContactCTA     = "Contact Us Now"
)

var WhatsAppTimeline = Timeline{
	Heading:    "WhatsApp Customer Service",
	Subheading: "Our process for implementing your 24/7 AI-powered WhatsApp support",
	BackLabel:  "Back to Services",
	CTAHeading: "Ready to automate your WhatsApp customer service?",
	Steps: []Step{
		{"Initial Consultation", "Let us know that you need WhatsApp customer service automation to save you time. We'll discuss your specific customer service needs, volume of inquiries, and common questions your customers ask."},
		{"Quick Compatibility Call", "Book a 15-minute Zoom call to ensure we're a good match. We'll evaluate if your WhatsApp business account is properly set up and discuss integration requirements with your existing systems."},
		{"Project Kickoff", "After confirming compatibility, you'll pay a fixed $100 downpayment to begin the WhatsApp AI development process. We'll create a project plan with clear milestones for your WhatsApp automation solution."},
		{"Development & Training", "During our 1-week development process, we'll need samples of past WhatsApp conversations between you and your customers. This helps us train the AI to respond in your brand voice and handle typical inquiries effectively."},
		{"Testing & Integration", "We'll test the AI with various customer scenarios and integrate it with your WhatsApp Business API. You'll have the opportunity to review responses and suggest adjustments before full deployment."},
		{"Implementation & Handover", "Once testing is complete, you can focus on your core business while your WhatsApp customer service is handled automatically. We'll provide training on how to monitor the system and handle special cases."},
		{"Ongoing Support", "Your monthly subscription includes 24/7 technical support, continuous AI improvement based on new conversations, and maintenance for any issues that arise. We'll regularly update the system to improve response accuracy."},
	},
}

var WebsiteTimeline = Timeline{
	Heading:    "Custom Website Development",
	Subheading: "Our process for creating your modern, responsive, and SEO-optimized website",
	BackLabel:  "Back to Services",
	CTAHeading: "Ready to build your custom website?",
	Steps: []Step{
		{"Discovery & Requirements", "Let us know that you need a custom website to save you time and expand your online presence. We'll discuss your business goals, target audience, desired features, and analyze any existing website you may have."},
		{"Design Consultation", "Book a 15-minute Zoom call to discuss your design preferences, branding requirements, and content needs. We'll show you examples of our previous work and discuss layout options that would work best for your business."},
		{"Project Kickoff", "After confirming the project scope, you'll pay a fixed $100 downpayment to begin the website development process. We'll create a detailed project timeline with key milestones and deliverables."},
		{"Design & Development", "During our 1-week development process, we'll create wireframes and mockups for your approval, then build a responsive website with modern UI/UX principles. We'll incorporate your branding elements and optimize for all devices."},
		{"Content Integration", "We'll integrate your content, images, and any required functionality such as contact forms, booking systems, or e-commerce features. We'll also set up analytics to track visitor behavior and performance."},
		{"SEO Optimization", "We'll optimize your website for search engines with proper meta tags, fast loading speeds, mobile responsiveness, and structured data. This helps improve your visibility in search results and drives organic traffic."},
		{"Testing & Launch", "We'll thoroughly test your website across different devices and browsers to ensure everything works perfectly. After your approval, we'll launch the site and provide training on how to manage and update content."},
		{"Ongoing Support", "Your monthly subscription includes technical support, security updates, performance monitoring, and regular backups. We'll ensure your website stays secure, fast, and up-to-date with the latest web standards."},
	},
}

var CustomPlanTimeline = Timeline{
	Heading:    "Custom AI Solution",
	Subheading: "Our process for developing tailored AI solutions for your unique business needs",
	BackLabel:  "Back to Services",
	CTAHeading: "Ready for a custom AI solution?",
	Steps: []Step{
		{"Problem Discovery", "Let us know about the specific business challenges you're facing that could be solved with AI. We'll discuss your current processes, pain points, and the areas where automation could have the biggest impact on your operations."},
		{"Solution Planning", "Book a 15-minute Zoom call where our AI specialists will explore potential custom solutions tailored to your unique business needs. We'll discuss technical requirements, integration possibilities, and expected outcomes."},
		{"Proposal & Agreement", "We'll create a detailed proposal outlining the custom AI solution, including scope, timeline, and pricing. After your approval, you'll pay a fixed $100 downpayment to begin the development process."},
		{"Data Collection", "During our development process, we'll collect and analyze relevant data from your business operations. This might include customer interactions, business processes, or specific datasets needed to train your custom AI solution."},
		{"AI Model Development", "Our team will develop a custom AI solution specifically designed for your business needs. This may include machine learning models, natural language processing, computer vision, or other AI technologies as required."},
		{"Integration & Testing", "We'll integrate the AI solution with your existing systems and conduct thorough testing to ensure everything works seamlessly. You'll have the opportunity to provide feedback and request adjustments before final deployment."},
		{"Training & Deployment", "Once the solution is ready, we'll provide comprehensive training for your team on how to use and manage the new AI system. We'll then deploy the solution in your business environment and monitor initial performance."},
		{"Ongoing Support & Optimization", "Your monthly subscription includes dedicated technical support, regular performance reviews, and continuous optimization of your AI solution. We'll work with you to identify new opportunities for improvement and scale the solution as your business grows."},
	},
}

var ProcessTimeline = Timeline{
	Heading:    "How This Usually Goes",
	Subheading: "Our streamlined process to get your AI customer service up and running",
	BackLabel:  "Back to Home",
	CTAHeading: "Ready to get started?",
	Steps: []Step{
		{"Initial Consultation", "Let us know that this is the service you need to save you some time. We'll help you understand how our AI solution can address your specific needs and challenges."},
		{"Quick Compatibility Call", "Book a 15 minute quick zoom call to make sure we're a good match to work together. We'll discuss your requirements in more detail and ensure our solution aligns with your business goals."},
		{"Project Kickoff", "If we're good, you'll pay us a downpayment of a fixed 100$ of any service you choose, and we start working right away. This commitment allows us to begin the development process immediately."},
		{"Development Process", "During our 1 week development process, we'll need samples of chats between you and your customers so that we can train the AI on. This helps us create a solution that accurately represents your business voice and handles common customer inquiries effectively."},
		{"Implementation & Handover", "After we're done, you'll enjoy working on the important things, knowing that this is handled well. We'll provide comprehensive training on how to manage and get the most out of your new AI system."},
		{"Ongoing Support", "Your monthly payment will include 24/7 support, and maintainence to anything that goes wrong. We're committed to ensuring your AI solution continues to perform optimally and evolves with your business needs."},
	},
}

var WhatsAppDemo = struct {
	Heading    string
	Intro      string
	Benefits   []string
	TryIt      string
	TryItBody  string
	CTAHeading string
	CTAButton  string
}{
	Heading: "WhatsApp AI Customer Service",
	Intro:   "Our AI-powered WhatsApp customer service solution provides 24/7 support for your business, handling common customer inquiries instantly.",
	Benefits: []string{
		"24/7 automated responses",
		"Multilingual support",
		"Seamless human handoff for complex issues",
		"Integration with your knowledge base",
		"Appointment scheduling and data collection",
		"Customized to match your brand voice",
	},
	TryIt:      "Try it yourself!",
	TryItBody:  " Use the interactive WhatsApp demo on the right to experience our AI customer service in action.",
	CTAHeading: "Ready to transform your customer service?",
	CTAButton:  "Contact us for pricing",
}

var WebsiteDemo = struct {
	Heading string
	Lead    string
	Body    string
	FunFact string
	Button  string
}{
	Heading: "Plot Twist!",
	Lead:    "You're already looking at our website demo!",
	Body:    "This modern, responsive site with its sleek animations, custom components, and intuitive navigation is exactly what we can build for your business.",
	FunFact: " The stars in the background aren't just for show - they're rendered in real-time using canvas animation. That's the level of detail and interactivity we bring to every project.",
	Button:  "I want a website like this",
}
