package notify

// mailStrings holds the localized copy for one email kind.
type mailStrings struct {
	Subject  string
	Intro    string
	Action   string
	AltIntro string
	Ignore   string
}

var confirmStrings = map[string]mailStrings{
	"es": {
		Subject:  "Confirma tu correo electrónico",
		Intro:    "Gracias por registrarte. Para activar tu cuenta, confirma tu dirección de correo electrónico.",
		Action:   "Confirmar correo",
		AltIntro: "Si el botón no funciona, copia y pega este enlace en tu navegador:",
		Ignore:   "Si no creaste esta cuenta, puedes ignorar este mensaje.",
	},
	"en": {
		Subject:  "Confirm your email address",
		Intro:    "Thanks for signing up. To activate your account, please confirm your email address.",
		Action:   "Confirm email",
		AltIntro: "If the button does not work, copy and paste this link into your browser:",
		Ignore:   "If you did not create this account, you can safely ignore this message.",
	},
}

var resetStrings = map[string]mailStrings{
	"es": {
		Subject:  "Restablece tu contraseña",
		Intro:    "Recibimos una solicitud para restablecer la contraseña de tu cuenta.",
		Action:   "Restablecer contraseña",
		AltIntro: "Si el botón no funciona, copia y pega este enlace en tu navegador:",
		Ignore:   "Si no solicitaste este cambio, puedes ignorar este mensaje; tu contraseña seguirá siendo la misma.",
	},
	"en": {
		Subject:  "Reset your password",
		Intro:    "We received a request to reset the password for your account.",
		Action:   "Reset password",
		AltIntro: "If the button does not work, copy and paste this link into your browser:",
		Ignore:   "If you did not request this change, you can safely ignore this message; your password will stay the same.",
	},
}
