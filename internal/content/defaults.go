package content

// Default returns the sample content the site ships with.
func Default() *Content {
	return &Content{
		Site: Site{
			Title:          "White Rose Arts",
			Tagline:        "Where music grows into stories.",
			Favicon:        "/favicon.svg",
			Copyright:      "© White Rose Arts",
			HeroBackground: "https://www.mediafire.com/convkey/ockhbzi645fedfh/white-rose-blossoms-free-photo.jpg",
			HoverBell:      "https://www.mediafire.com/file/eah3g0g2bm50r9p/556710__nachtmahrtv__shop-bell.wav/file",
			Splash: Splash{
				Enabled: true,
				Src:     "https://www.mediafire.com/file/abcd1234/petals.webm",
			},
			Quote: []string{
				"An art which isn't based on feeling isn't an art at all.",
				"Paul Cezanne",
			},
		},
		About: About{
			Name:  "Cayden Collins",
			Photo: "https://www.mediafire.com/convkey/tiptsj27u7dp4u1/IMG_9762.jpeg",
			Bio: "My name is Cayden Collins, and I'm a student studying Music Education with the concentrations of piano and percussion. " +
				"I've marched with Civitas Independent during the 2024 and medaling at wgi world championships on the 2025 season, " +
				"and I had the privilege of writing for Lawrence County High School, where the ensemble medaled at the Tennessee Indoor Percussion Finals.\n\n" +
				"Through my brand, White Rose Arts, I create work that blends music, visual design, and storytelling into immersive experiences. " +
				"My goal is to craft art that feels authentic and powerful to inspire others to create, challenges perspectives, and leaves a lasting emotional impact.",
			Bullets: []string{
				"Sound Design",
				"Battery & Front Ensemble Writing",
				"Show Design Consultation",
				"Visual Consultation",
			},
			Links: AboutLinks{
				YouTube:    "https://www.youtube.com/@WaltzesMC",
				SoundCloud: "https://soundcloud.com/waltzesmc",
				Email:      "mailto:caydencollinsmusic@gmail.com",
			},
		},
		Shows: []Show{
			{
				Slug:          "divine-machinery-ex-machina",
				Title:         "Divine Machinery :: Ex Machina",
				Year:          2025,
				Cover:         "https://i9.ytimg.com/vi/Jus8Y5up0Nc/maxresdefault.jpg",
				YouTubeID:     "Jus8Y5up0Nc",
				SoundCloudURL: "https://on.soundcloud.com/D23UXnyQ8QY6WIF6Yz",
				Description: "## Program Notes\n\n" +
					"*Divine Machinery* is a show concept that explores the intersection of technology and the divine " +
					"through an artificial intelligence's journey of transformation, conflict, and spirituality.",
				SheetMusicLinks: []SheetLink{
					{Label: "Opener – mm.12–24 (battery)", URL: "https://example.com/opener_excerpt.pdf"},
					{Label: "Ballad – main theme (FE)", URL: "https://example.com/ballad_theme.pdf"},
					{Label: "Closer – hit sculpt (battery + FE)", URL: "https://example.com/closer_hit.pdf"},
				},
				PetalPositions: []Petal{
					{X: 18, Y: 36, LinkIndex: 0},
					{X: 54, Y: 22, LinkIndex: 1},
					{X: 80, Y: 63, LinkIndex: 2},
				},
			},
		},
		Soundtracks: []Soundtrack{
			{
				Label: "Cinematic Ambient — Playlist",
				URL:   "https://www.youtube.com/watch?v=D9kuS69dUlg&list=RDD9kuS69dUlg&start_radio=1&t=16s",
			},
		},
	}
}
