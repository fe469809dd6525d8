package keywords

// defaultCategories is the built-in catalog of technical terms. Order matters:
// partial matches resolve to the first keyword found walking this list.
var defaultCategories = []Category{
	{Name: "languages", Keywords: []string{
		"javascript", "typescript", "python", "php", "java", "go", "ruby", "sql",
		"csharp", "c++", "r", "swift", "kotlin", "bash", "shell", "dart",
	}},
	{Name: "frontend", Keywords: []string{
		"html", "css", "sass", "scss", "less", "tailwind", "bootstrap", "react",
		"nextjs", "vue", "nuxtjs", "angular", "svelte", "remix", "jquery", "redux",
		"vite", "webpack", "babel", "chakraui", "materialui",
	}},
	{Name: "backend", Keywords: []string{
		"node", "nodejs", "express", "nestjs", "laravel", "php", "django", "flask",
		"fastapi", "rails", "spring", "springboot", "ruby", "mvc", "api", "graphql",
		"rest", "restful", "websocket", "rpc", "oauth", "jwt",
	}},
	{Name: "devops", Keywords: []string{
		"git", "github", "ci", "cd", "docker", "kubernetes", "terraform", "ansible",
		"jenkins", "githubactions", "gitlabci", "travisci", "circleci", "bash",
		"linux", "nginx", "vagrant", "helm", "logstash",
	}},
	{Name: "cloud", Keywords: []string{
		"aws", "azure", "gcp", "firebase", "lambda", "ec2", "s3", "rds", "vpc",
		"cloudfront", "cloudfunctions", "bigquery", "heroku", "digitalocean",
	}},
	{Name: "databases", Keywords: []string{
		"mysql", "postgresql", "postgres", "mongodb", "redis", "sqlite", "mariadb",
		"dynamodb", "neo4j", "supabase", "firestore", "prisma", "typeorm", "sequelize",
	}},
	{Name: "testing", Keywords: []string{
		"jest", "mocha", "chai", "cypress", "playwright", "selenium", "junit",
		"reacttestinglibrary", "unittest", "pytest", "vitest", "rspec",
	}},
	{Name: "ai_ml", Keywords: []string{
		"tensorflow", "pytorch", "keras", "scikit", "scikitlearn", "huggingface",
		"openai", "gpt", "transformers", "pandas", "numpy", "matplotlib", "seaborn",
	}},
	{Name: "softskills", Keywords: []string{
		"communication", "teamwork", "collaboration", "problem-solving",
		"adaptability", "leadership", "mentoring", "criticalthinking", "organization",
	}},
	{Name: "methodologies", Keywords: []string{
		"agile", "scrum", "kanban", "lean", "tdd", "bdd", "sprint", "waterfall",
		"pairprogramming", "ci", "cd",
	}},
	{Name: "security", Keywords: []string{
		"jwt", "ssl", "tls", "encryption", "oauth2", "authentication",
		"authorization", "csrf", "xss", "saml", "bcrypt", "hashing", "firewall", "rbac",
	}},
	{Name: "mobile", Keywords: []string{
		"reactnative", "flutter", "xamarin", "swiftui", "androidstudio", "ios",
		"kotlin", "capacitor", "cordova",
	}},
	{Name: "architecture", Keywords: []string{
		"microservices", "monolith", "eventdriven", "serverless",
		"cleanarchitecture", "hexagonal", "ddd", "designpatterns", "soa",
	}},
	{Name: "other", Keywords: []string{
		"seo", "pwa", "performance", "accessibility", "responsive",
		"webperformance", "websocket", "cms", "wordpress", "shopify", "figma",
		"adobe", "storybook",
	}},
}

var defaultWeights = map[string]float64{
	"languages": 1.2,
}

var defaultTaxonomy = mustTaxonomy(defaultCategories, defaultWeights)

func mustTaxonomy(categories []Category, weights map[string]float64) *Taxonomy {
	t, err := NewTaxonomy(categories, weights)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultTaxonomy returns the built-in taxonomy. It is built once and shared.
func DefaultTaxonomy() *Taxonomy {
	return defaultTaxonomy
}
