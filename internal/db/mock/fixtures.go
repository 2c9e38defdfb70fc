package mock

import (
	"time"

	"dsfs/models"
)

// seededAt anchors fixture timestamps so repeated seeds produce identical rows.
var seededAt = time.Date(2024, time.March, 18, 9, 0, 0, 0, time.UTC)

const pexels = "https://images.pexels.com/photos/"

// Users returns the demo accounts that posts are authored by.
func Users() []models.User {
	return []models.User{
		{
			ID: "1", Username: "sarah_chen", Name: "Sarah Chen",
			Avatar:    pexels + "1130626/pexels-photo-1130626.jpeg?auto=compress&cs=tinysrgb&w=150",
			Bio:       "CS @ Stanford. Building AI for early disease detection.",
			Followers: 1248, Following: 312, IsVerified: true, IsStudent: true,
		},
		{
			ID: "2", Username: "mike_rodriguez", Name: "Mike Rodriguez",
			Avatar:    pexels + "1043471/pexels-photo-1043471.jpeg?auto=compress&cs=tinysrgb&w=150",
			Bio:       "Robotics at MIT. Automating the boring parts of manufacturing.",
			Followers: 876, Following: 201, IsVerified: true, IsStudent: true,
		},
		{
			ID: "3", Username: "alex_kim", Name: "Alex Kim",
			Avatar:    pexels + "1516680/pexels-photo-1516680.jpeg?auto=compress&cs=tinysrgb&w=150",
			Bio:       "Data science at Berkeley. Climate models all day.",
			Followers: 534, Following: 402, IsVerified: true, IsStudent: true,
		},
		{
			ID: "4", Username: "emma_wilson", Name: "Emma Wilson",
			Avatar:    pexels + "774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=150",
			Bio:       "Alumni mentor and angel supporter of student projects.",
			Followers: 2210, Following: 98,
		},
	}
}

// Posts returns the demo feed with nested comments.
func Posts() []models.Post {
	return []models.Post{
		{
			ID: "1", UserID: "1",
			Images:  []string{pexels + "546819/pexels-photo-546819.jpeg?auto=compress&cs=tinysrgb&w=800"},
			Caption: "First prototype of our diagnostic model is live in the lab!",
			Likes:   142, Timestamp: seededAt.Add(-2 * time.Hour),
			IsFundable: true, FundingGoal: 5000, CurrentFunding: 2800,
			Comments: []models.Comment{
				{ID: "c1", PostID: "1", UserID: "4", Text: "Incredible progress, happy to support.", Likes: 12, CreatedAt: seededAt.Add(-90 * time.Minute)},
				{ID: "c2", PostID: "1", UserID: "3", Text: "Would love to compare notes on the data pipeline.", Likes: 4, CreatedAt: seededAt.Add(-80 * time.Minute)},
			},
		},
		{
			ID: "2", UserID: "2",
			Images:  []string{pexels + "3862132/pexels-photo-3862132.jpeg?auto=compress&cs=tinysrgb&w=800"},
			Caption: "The arm finally picks parts without dropping them.",
			Likes:   89, Timestamp: seededAt.Add(-5 * time.Hour),
			IsFundable: true, FundingGoal: 8000, CurrentFunding: 3200,
			Comments: []models.Comment{
				{ID: "c3", PostID: "2", UserID: "1", Text: "That grip is so smooth!", Likes: 7, CreatedAt: seededAt.Add(-4 * time.Hour)},
			},
		},
		{
			ID: "3", UserID: "3",
			Images:  []string{pexels + "1181263/pexels-photo-1181263.jpeg?auto=compress&cs=tinysrgb&w=800"},
			Caption: "New regional rainfall predictions are out. Thread below.",
			Likes:   57, Timestamp: seededAt.Add(-26 * time.Hour),
			IsFundable: true, FundingGoal: 5000, CurrentFunding: 1500,
		},
		{
			ID: "4", UserID: "4",
			Images:  []string{pexels + "1595391/pexels-photo-1595391.jpeg?auto=compress&cs=tinysrgb&w=800"},
			Caption: "Mentoring day with this year's cohort. So much talent.",
			Likes:   203, Timestamp: seededAt.Add(-48 * time.Hour),
		},
	}
}

// Students returns the demo student directory with projects.
func Students() []models.Student {
	return []models.Student{
		{
			ID: "1", Name: "Sarah Chen", Username: "sarah_chen",
			Avatar:     pexels + "1130626/pexels-photo-1130626.jpeg?auto=compress&cs=tinysrgb&w=150",
			University: "Stanford University", Course: "Computer Science", GPA: 3.89, Year: "Senior",
			Bio:         "Passionate about AI and its applications in healthcare. Working on machine learning models for early disease detection.",
			IsVerified:  true,
			FundingGoal: 15000, CurrentFunding: 8500, Supporters: 43, TotalFunded: 12300,
			Achievements: []string{"Dean's List 2023", "Google Summer of Code 2023", "Research Published in IEEE"},
			Projects: []models.Project{
				{
					ID: 1, StudentID: "1", Title: "AI Healthcare Assistant",
					Description: "Building an AI system to help diagnose diseases early",
					GoalAmount:  5000, CurrentAmount: 2800,
					Image: pexels + "546819/pexels-photo-546819.jpeg?auto=compress&cs=tinysrgb&w=400",
				},
				{
					ID: 2, StudentID: "1", Title: "GPU Cluster Access",
					Description: "Need computing resources for deep learning research",
					GoalAmount:  3000, CurrentAmount: 1200,
					Image: pexels + "325229/pexels-photo-325229.jpeg?auto=compress&cs=tinysrgb&w=400",
				},
			},
		},
		{
			ID: "2", Name: "Mike Rodriguez", Username: "mike_rodriguez",
			Avatar:     pexels + "1043471/pexels-photo-1043471.jpeg?auto=compress&cs=tinysrgb&w=150",
			University: "MIT", Course: "Mechanical Engineering", GPA: 3.92, Year: "Junior",
			Bio:         "Robotics engineer focused on automation and manufacturing solutions.",
			IsVerified:  true,
			FundingGoal: 12000, CurrentFunding: 4500, Supporters: 29, TotalFunded: 7800,
			Achievements: []string{"MIT Robotics Competition Winner", "Published in Nature Robotics", "National Science Foundation Grant"},
			Projects: []models.Project{
				{
					ID: 3, StudentID: "2", Title: "Autonomous Manufacturing Robot",
					Description: "Developing robots for smart manufacturing",
					GoalAmount:  8000, CurrentAmount: 3200,
					Image: pexels + "3862132/pexels-photo-3862132.jpeg?auto=compress&cs=tinysrgb&w=400",
				},
			},
		},
		{
			ID: "3", Name: "Alex Kim", Username: "alex_kim",
			Avatar:     pexels + "1516680/pexels-photo-1516680.jpeg?auto=compress&cs=tinysrgb&w=150",
			University: "UC Berkeley", Course: "Data Science", GPA: 3.78, Year: "Senior",
			Bio:         "Data scientist working on climate change prediction models.",
			IsVerified:  true,
			FundingGoal: 8000, CurrentFunding: 2100, Supporters: 18, TotalFunded: 3400,
			Achievements: []string{"Berkeley Data Science Award", "Climate Research Fellowship"},
			Projects: []models.Project{
				{
					ID: 4, StudentID: "3", Title: "Climate Prediction Model",
					Description: "Using ML to predict climate change impacts",
					GoalAmount:  5000, CurrentAmount: 1500,
					Image: pexels + "1181263/pexels-photo-1181263.jpeg?auto=compress&cs=tinysrgb&w=400",
				},
			},
		},
	}
}

// FeaturedProjects returns the campus initiatives shown on the explore screen.
func FeaturedProjects() []models.FeaturedProject {
	const unsplash = "https://images.unsplash.com/"
	return []models.FeaturedProject{
		{ID: "p1", Title: "Green Energy for Campus", Image: unsplash + "photo-1509395176047-4a66953fd231?w=800", Funded: 65, Goal: 100},
		{ID: "p2", Title: "AI Study Buddy", Image: unsplash + "photo-1550751827-4bd374c3f58b?w=800", Funded: 80, Goal: 100},
		{ID: "p3", Title: "Clean Water Initiative", Image: unsplash + "photo-1521207418485-99c705420785?w=800", Funded: 45, Goal: 100},
		{ID: "p4", Title: "Community Art Festival", Image: unsplash + "photo-1500530855697-b586d89ba3ee?w=800", Funded: 20, Goal: 100},
	}
}

// Notifications returns the activity shown to the signed-in user.
func Notifications() []models.Notification {
	return []models.Notification{
		{ID: "n1", Type: "like", UserID: "4", PostID: "1", Message: "Emma Wilson liked your post", Timestamp: seededAt.Add(-30 * time.Minute)},
		{ID: "n2", Type: "comment", UserID: "3", PostID: "1", Message: "Alex Kim commented on your post", Timestamp: seededAt.Add(-80 * time.Minute)},
		{ID: "n3", Type: "funding", UserID: "4", PostID: "2", Message: "Emma Wilson funded Autonomous Manufacturing Robot", Timestamp: seededAt.Add(-3 * time.Hour), Read: true},
		{ID: "n4", Type: "follow", UserID: "2", Message: "Mike Rodriguez started following you", Timestamp: seededAt.Add(-24 * time.Hour), Read: true},
	}
}
