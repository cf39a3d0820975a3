package content

type Sermon struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	VideoURL string `json:"videoUrl"`
	Author   string `json:"author"`
	Date     string `json:"date"`
}

type Music struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Artist       string `json:"artist"`
	Category     string `json:"category"`
}

type Story struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
	VideoURL     string `json:"videoUrl"`
	Type         string `json:"type"`
}

// Options maps option letters (a-d) to their text.
type Options struct {
	A string `json:"a"`
	B string `json:"b"`
	C string `json:"c"`
	D string `json:"d"`
}

type QuizQuestion struct {
	ID            string  `json:"id"`
	Question      string  `json:"question"`
	Options       Options `json:"options"`
	CorrectOption string  `json:"correctOption"`
}

type Quiz struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
}

type Devotional struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Verse   string `json:"verse"`
	Content string `json:"content"`
	Prayer  string `json:"prayer"`
}

type BibleVersion struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type BibleVerse struct {
	Reference string `json:"reference"`
	Text      string `json:"text"`
}

type IntercessoryScripture struct {
	ID        string `json:"id"`
	Theme     string `json:"theme"`
	Reference string `json:"reference"`
	Text      string `json:"text"`
}

type Testimony struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	URL      string `json:"url"`
	Content  string `json:"content"`
	Date     string `json:"date"`
}

type StudyDay struct {
	Day       int    `json:"day"`
	Title     string `json:"title"`
	Scripture string `json:"scripture"`
	Focus     string `json:"focus"`
}

type StudyPlan struct {
	ID          string     `json:"id"`
	Level       string     `json:"level"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Days        []StudyDay `json:"days"`
}
