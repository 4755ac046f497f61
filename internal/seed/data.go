package seed

import "github.com/holawaleh/dreamspacefrontend/internal/types"

func techPosts() []types.NewTechPost {
	return []types.NewTechPost{
		{
			Title:    "The Rise of Fintech in Nigeria",
			Category: "Fintech",
			Excerpt:  "How mobile money and digital banking are transforming the economic landscape.",
			Content:  types.Ptr("Mobile money and digital banking solutions are revolutionizing how Nigerians handle their finances..."),
			ImageURL: types.Ptr("https://images.unsplash.com/photo-1563986768609-322da13575f3?w=800&q=80"),
		},
		{
			Title:    "Review: Latest M1 Chip Performance",
			Category: "Hardware",
			Excerpt:  "A deep dive into the performance metrics of the newest silicon chips.",
			Content:  types.Ptr("The latest M1 chip brings unprecedented performance to consumer devices..."),
			ImageURL: types.Ptr("https://images.unsplash.com/photo-1517336714731-489689fd1ca4?w=800&q=80"),
		},
		{
			Title:    "Cloud Computing Trends 2025",
			Category: "Cloud",
			Excerpt:  "What to expect in the world of serverless architecture and edge computing.",
			Content:  types.Ptr("Serverless and edge computing are reshaping how we build scalable applications..."),
			ImageURL: types.Ptr("https://images.unsplash.com/photo-1451187580459-43490279c0fa?w=800&q=80"),
		},
		{
			Title:    "Cybersecurity Essentials",
			Category: "Security",
			Excerpt:  "Protecting your digital assets in an increasingly connected world.",
			Content:  types.Ptr("With cyber threats evolving daily, understanding security fundamentals is more important than ever..."),
			ImageURL: types.Ptr("https://images.unsplash.com/photo-1550751827-4bd374c3f58b?w=800&q=80"),
		},
	}
}

func tutorials() []types.NewTutorial {
	return []types.NewTutorial{
		{
			Title:       "Python for Beginners: Zero to Hero",
			Level:       "Beginner",
			Duration:    "45 mins",
			Description: "Learn the fundamentals and best practices in this comprehensive guide to Python programming.",
			ImageURL:    types.Ptr("https://images.unsplash.com/photo-1526379095098-d400fd0bf935?w=800&q=80"),
		},
		{
			Title:       "Arduino Basics: LED Blinking",
			Level:       "Beginner",
			Duration:    "30 mins",
			Description: "Get started with Arduino by building your first LED blinking circuit.",
			ImageURL:    types.Ptr("https://images.unsplash.com/photo-1555664424-778a69022365?w=800&q=80"),
		},
		{
			Title:       "React Hooks Deep Dive",
			Level:       "Advanced",
			Duration:    "60 mins",
			Description: "Master React Hooks with practical examples and advanced patterns.",
			ImageURL:    types.Ptr("https://images.unsplash.com/photo-1633356122544-f134324a6cee?w=800&q=80"),
		},
		{
			Title:       "Building a REST API with Node.js",
			Level:       "Intermediate",
			Duration:    "90 mins",
			Description: "Create a professional REST API using Node.js, Express, and PostgreSQL.",
			ImageURL:    types.Ptr("https://images.unsplash.com/photo-1627398242454-45a1465c2479?w=800&q=80"),
		},
	}
}

func software() []types.NewSoftware {
	return []types.NewSoftware{
		{
			Name:        "TechHub ERP",
			Version:     types.Ptr("v2.4.0"),
			Description: types.Ptr("Complete enterprise resource planning for small businesses."),
			Size:        types.Ptr("145 MB"),
			DownloadURL: types.Ptr("#"),
		},
		{
			Name:        "Inventory Mate",
			Version:     types.Ptr("v1.1.2"),
			Description: types.Ptr("Simple inventory tracking for retail stores."),
			Size:        types.Ptr("45 MB"),
			DownloadURL: types.Ptr("#"),
		},
		{
			Name:        "EduTrack Pro",
			Version:     types.Ptr("v3.0.1"),
			Description: types.Ptr("Student management system for schools."),
			Size:        types.Ptr("210 MB"),
			DownloadURL: types.Ptr("#"),
		},
	}
}

func products() []types.NewProduct {
	return []types.NewProduct{
		{
			Name:        "Arduino Starter Kit",
			Price:       types.Ptr("$45.00"),
			Rating:      types.Ptr("4.8"),
			ImageURL:    types.Ptr("https://images.unsplash.com/photo-1553406830-ef2513450d76?w=800&q=80"),
			Badge:       types.Ptr("Best Seller"),
			Description: types.Ptr("Complete Arduino starter kit with sensors, LEDs, and components."),
		},
		{
			Name:        "Raspberry Pi 5 Model B",
			Price:       types.Ptr("$85.00"),
			Rating:      types.Ptr("4.9"),
			ImageURL:    types.Ptr("https://images.unsplash.com/photo-1550041473-d296a3a8a18a?w=800&q=80"),
			Badge:       types.Ptr("New"),
			Description: types.Ptr("The latest Raspberry Pi with improved performance and features."),
		},
		{
			Name:        "Professional Soldering Station",
			Price:       types.Ptr("$120.00"),
			Rating:      types.Ptr("4.7"),
			ImageURL:    types.Ptr("https://images.unsplash.com/photo-1527383418406-f85a3b94637d?w=800&q=80"),
			Description: types.Ptr("High-quality temperature-controlled soldering station for professionals."),
		},
		{
			Name:        "Tech Repair Toolkit",
			Price:       types.Ptr("$35.00"),
			Rating:      types.Ptr("4.6"),
			ImageURL:    types.Ptr("https://images.unsplash.com/photo-1581092918056-0c4c3acd3789?w=800&q=80"),
			Badge:       types.Ptr("Sale"),
			Description: types.Ptr("Essential toolkit for electronics repair and maintenance."),
		},
	}
}
