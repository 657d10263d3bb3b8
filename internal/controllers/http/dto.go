package http

type RegisterForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Phone    string `form:"phone"`
	Password string `form:"password"`
}

type LoginForm struct {
	EmailOrPhone string `form:"email_or_phone"`
	Password     string `form:"password"`
}

type AdminLoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// ProductForm carries the text fields of the add-product form; the image
// arrives as the "image" file part.
type ProductForm struct {
	Name        string `form:"name"`
	Price       string `form:"price"`
	Description string `form:"description"`
	Phone       string `form:"phone"`
	CameraImage string `form:"camera_image"`
}

type ReviewForm struct {
	Rating string `form:"rating"`
	Text   string `form:"text"`
}

type SearchQuery struct {
	Q string `form:"q"`
}
