package ui

import (
	"fmt"
	"net/http"
	"time"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"microblog/internal/domain"
)

// appPage renders the shared page chrome: top bar with navigation matching
// the viewer's privileges, and the page body in a centered column.
func appPage(title string, principal *domain.Principal, body ...Node) Node {
	nav := []Node{
		A(Href("/ui"), Class("brand"), Text("Microblog")),
		A(Href("/ui"), Text("Posts")),
	}
	if principal != nil {
		nav = append(nav,
			A(Href("/ui/posts/new"), Text("New Post")),
			A(Href("/ui/profile"), Text("Profile")),
		)
		if principal.IsAdmin {
			nav = append(nav, A(Href("/ui/users"), Text("Users")))
		}
		nav = append(nav,
			Div(Class("spacer")),
			Span(Class("who"), Text(principal.Username)),
			Form(Class("inline-form"), Method("post"), Action("/ui/logout"),
				Button(Class("plain"), Type("submit"), Text("Log out")),
			),
		)
	} else {
		nav = append(nav,
			Div(Class("spacer")),
			A(Href("/ui/login"), Text("Log in")),
			A(Href("/ui/register"), Text("Register")),
		)
	}

	return HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | Microblog")),
			StyleEl(Raw(appCSS)),
		),
		Body(
			Header(Class("topbar"), Group(nav)),
			Main(Class("container"), Group(body)),
		),
	)
}

func errorPage(principal *domain.Principal, title, message string) Node {
	return appPage(title, principal,
		H2(Text(title)),
		P(Class("meta"), Text(message)),
		P(A(Href("/ui"), Text("Back to posts"))),
	)
}

func flashError(message string) Node {
	if message == "" {
		return nil
	}
	return Div(Class("flash-error"), Text(message))
}

func formatTime(t time.Time) string {
	return t.Local().Format("Jan 2, 2006 15:04")
}

// --- Auth pages ---

func loginPage(r *http.Request, errMsg string) Node {
	return appPage("Log In", nil,
		H2(Text("Log In")),
		flashError(errMsg),
		Form(Method("post"), Action("/ui/login"),
			csrfField(r),
			Div(Class("form-row"),
				Label(For("email"), Text("Email")),
				Input(Type("email"), ID("email"), Name("email"), Required()),
			),
			Div(Class("form-row"),
				Label(For("password"), Text("Password")),
				Input(Type("password"), ID("password"), Name("password"), Required()),
			),
			Button(Type("submit"), Text("Log in")),
		),
		P(Class("meta"),
			Text("No account yet? "),
			A(Href("/ui/register"), Text("Register")),
		),
	)
}

func registerPage(r *http.Request, errMsg string) Node {
	return appPage("Register", nil,
		H2(Text("Register")),
		flashError(errMsg),
		Form(Method("post"), Action("/ui/register"),
			csrfField(r),
			Div(Class("form-row"),
				Label(For("username"), Text("Username")),
				Input(Type("text"), ID("username"), Name("username"), Required()),
			),
			Div(Class("form-row"),
				Label(For("email"), Text("Email")),
				Input(Type("email"), ID("email"), Name("email"), Required()),
			),
			Div(Class("form-row"),
				Label(For("password"), Text("Password")),
				Input(Type("password"), ID("password"), Name("password"), Required()),
			),
			Button(Type("submit"), Text("Create account")),
		),
	)
}

// --- Post pages ---

func postsPage(principal *domain.Principal, posts []domain.Post) Node {
	cards := make([]Node, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		cards = append(cards, Div(Class("card"),
			H3(A(Href(fmt.Sprintf("/ui/posts/%d", p.ID)), Text(p.Title))),
			P(Class("meta"), Text(fmt.Sprintf("by %s on %s · %d comments",
				p.AuthorUsername, formatTime(p.CreatedAt), p.CommentCount))),
		))
	}
	if len(cards) == 0 {
		cards = append(cards, P(Class("meta"), Text("No posts yet.")))
	}
	return appPage("Posts", principal,
		H2(Text("Latest Posts")),
		Group(cards),
	)
}

func postDetailPage(r *http.Request, principal *domain.Principal, post *domain.Post, comments []domain.Comment) Node {
	canEdit := principal != nil && (principal.ID == post.AuthorID || principal.IsAdmin)

	body := []Node{
		H2(Text(post.Title)),
		P(Class("meta"), Text(fmt.Sprintf("by %s on %s", post.AuthorUsername, formatTime(post.CreatedAt)))),
		P(Text(post.Content)),
	}

	if canEdit {
		body = append(body, Div(
			A(Href(fmt.Sprintf("/ui/posts/%d/edit", post.ID)), Text("Edit")),
			Text(" "),
			Form(Class("inline-form"), Method("post"), Action(fmt.Sprintf("/ui/posts/%d/delete", post.ID)),
				csrfField(r),
				Button(Class("danger"), Type("submit"), Text("Delete post")),
			),
		))
	}

	body = append(body, H3(Text(fmt.Sprintf("Comments (%d)", len(comments)))))
	for i := range comments {
		c := &comments[i]
		commentCard := []Node{
			P(Text(c.Content)),
			P(Class("meta"), Text(fmt.Sprintf("%s · %s", c.AuthorUsername, formatTime(c.CreatedAt)))),
		}
		if principal != nil && (principal.ID == c.AuthorID || principal.IsAdmin) {
			commentCard = append(commentCard,
				Form(Class("inline-form"), Method("post"), Action(fmt.Sprintf("/ui/comments/%d/delete", c.ID)),
					csrfField(r),
					Input(Type("hidden"), Name("post_id"), Value(fmt.Sprintf("%d", post.ID))),
					Button(Class("plain"), Type("submit"), Text("Delete")),
				),
			)
		}
		body = append(body, Div(Class("card"), Group(commentCard)))
	}

	if principal != nil {
		body = append(body,
			Form(Method("post"), Action(fmt.Sprintf("/ui/posts/%d/comments", post.ID)),
				csrfField(r),
				Div(Class("form-row"),
					Label(For("content"), Text("Add a comment")),
					Textarea(ID("content"), Name("content"), Rows("3"), Required()),
				),
				Button(Type("submit"), Text("Comment")),
			),
		)
	} else {
		body = append(body, P(Class("meta"),
			A(Href("/ui/login"), Text("Log in")),
			Text(" to comment."),
		))
	}

	return appPage(post.Title, principal, body...)
}

func postFormPage(r *http.Request, principal *domain.Principal, post *domain.Post, errMsg string) Node {
	title := "New Post"
	action := "/ui/posts"
	var titleVal, contentVal string
	if post != nil {
		title = "Edit Post"
		action = fmt.Sprintf("/ui/posts/%d/edit", post.ID)
		titleVal = post.Title
		contentVal = post.Content
	}

	return appPage(title, principal,
		H2(Text(title)),
		flashError(errMsg),
		Form(Method("post"), Action(action),
			csrfField(r),
			Div(Class("form-row"),
				Label(For("title"), Text("Title")),
				Input(Type("text"), ID("title"), Name("title"), Value(titleVal), Required()),
			),
			Div(Class("form-row"),
				Label(For("content"), Text("Content")),
				Textarea(ID("content"), Name("content"), Rows("10"), Required(), Text(contentVal)),
			),
			Button(Type("submit"), Text("Save")),
		),
	)
}

// --- Account pages ---

func usersPage(r *http.Request, principal *domain.Principal, accounts []domain.Account) Node {
	rows := make([]Node, 0, len(accounts))
	for i := range accounts {
		a := &accounts[i]
		role := "user"
		if a.IsAdmin {
			role = "admin"
		}
		actions := []Node{
			A(Href(fmt.Sprintf("/ui/users/%d/edit", a.ID)), Text("Edit")),
		}
		if a.ID != principal.ID {
			actions = append(actions, Text(" "),
				Form(Class("inline-form"), Method("post"), Action(fmt.Sprintf("/ui/users/%d/delete", a.ID)),
					csrfField(r),
					Button(Class("plain"), Type("submit"), Text("Delete")),
				),
			)
		}
		rows = append(rows, Tr(
			Td(Text(fmt.Sprintf("%d", a.ID))),
			Td(Text(a.Username)),
			Td(Text(a.Email)),
			Td(Text(role)),
			Td(Text(formatTime(a.CreatedAt))),
			Td(Group(actions)),
		))
	}

	return appPage("Users", principal,
		H2(Text("Users")),
		P(A(Href("/ui/users/create"), Text("New user"))),
		Table(
			THead(Tr(
				Th(Text("ID")), Th(Text("Username")), Th(Text("Email")),
				Th(Text("Role")), Th(Text("Created")), Th(Text("")),
			)),
			TBody(Group(rows)),
		),
	)
}

// userFormPage renders the account create form (account == nil) or the edit
// form. The admin checkbox only appears for admin viewers; the policy still
// rejects a forged field.
func userFormPage(r *http.Request, principal *domain.Principal, account *domain.Account, errMsg string) Node {
	title := "New User"
	action := "/ui/users/create"
	var usernameVal, emailVal string
	passwordHint := "Password"
	if account != nil {
		title = "Edit Account"
		action = fmt.Sprintf("/ui/users/%d/edit", account.ID)
		usernameVal = account.Username
		emailVal = account.Email
		passwordHint = "New password (leave blank to keep current)"
	}

	fields := []Node{
		csrfField(r),
		Div(Class("form-row"),
			Label(For("username"), Text("Username")),
			Input(Type("text"), ID("username"), Name("username"), Value(usernameVal), Required()),
		),
		Div(Class("form-row"),
			Label(For("email"), Text("Email")),
			Input(Type("email"), ID("email"), Name("email"), Value(emailVal), Required()),
		),
		Div(Class("form-row"),
			Label(For("password"), Text(passwordHint)),
			If(account == nil,
				Input(Type("password"), ID("password"), Name("password"), Required()),
			),
			If(account != nil,
				Input(Type("password"), ID("password"), Name("password")),
			),
		),
	}
	if principal != nil && principal.IsAdmin {
		fields = append(fields, Div(Class("form-row"),
			Label(For("is_admin"), Text("Administrator")),
			Input(Type("checkbox"), ID("is_admin"), Name("is_admin"),
				If(account != nil && account.IsAdmin, Checked())),
		))
	}
	fields = append(fields, Button(Type("submit"), Text("Save")))

	return appPage(title, principal,
		H2(Text(title)),
		flashError(errMsg),
		Form(Method("post"), Action(action), Group(fields)),
	)
}

func profilePage(principal *domain.Principal, account *domain.Account, posts []domain.Post, postCount, commentCount int64) Node {
	postLinks := make([]Node, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		postLinks = append(postLinks, Li(
			A(Href(fmt.Sprintf("/ui/posts/%d", p.ID)), Text(p.Title)),
			Span(Class("meta"), Text(" · "+formatTime(p.CreatedAt))),
		))
	}

	return appPage("Profile", principal,
		H2(Text(account.Username)),
		P(Class("meta"), Text(fmt.Sprintf("%s · member since %s", account.Email, formatTime(account.CreatedAt)))),
		P(A(Href(fmt.Sprintf("/ui/users/%d/edit", account.ID)), Text("Edit profile"))),
		P(Text(fmt.Sprintf("%d posts · %d comments", postCount, commentCount))),
		H3(Text("Recent posts")),
		Ul(Group(postLinks)),
	)
}
