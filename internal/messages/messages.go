// Package messages is the catalog of user-facing response texts. Handlers
// and the store reference these constants so the same condition always
// produces the same message, whether it was caught proactively or surfaced
// from a database constraint.
package messages

// User
const (
	UserCreateSuccess      = "Signup successful. OTP sent to email."
	UserCreateError        = "Signup failed. Please try again."
	UserNotFound           = "User not found"
	UserAlreadyExists      = "User with this email or username already exists."
	UserIDNotFound         = "User ID doesn't exist"
	UserNameAlreadyExists  = "This username is already in use."
	UserFetchSuccess       = "User retrieved successfully"
	UserFetchError         = "Error fetching user"
	UserEditSuccess        = "User edited successfully"
	UserEditError          = "Error editing user"
	UserDeleted            = "User deleted successfully"
	UserDeleteError        = "Error deleting user"
	NameRequired           = "Name is required"
	UsernameRequired       = "User name is required"
	EmailRequired          = "Email is required"
	EmailInvalid           = "Invalid Email format"
	PasswordRequired       = "Password is required"
	PasswordInvalid        = "Password must be at least 8 characters long and include uppercase, lowercase, number, and special character"
	PasswordTooShort       = "Password must be at least 6 characters long"
	MobileRequired         = "Mobile number is required"
	MobileInvalid          = "Invalid mobile number"
	CountryCodeRequired    = "Country code is required"
	CountryCodeInvalid     = "Country code is wrong."
	InvalidUniqueIDFormat  = "Invalid unique ID format."
	NewPasswordRequired    = "New Password is required"
	ConfirmPasswordRequired = "Confirm Password is required"
)

// Login / OTP
const (
	LoginSuccess            = "Login successfully"
	EmailNotFound           = "Email not found"
	EmailOrUsernameRequired = "Email or username is required"
	EmailOrUsernameNotFound = "Email or username not found"
	IncorrectPassword       = "Password is incorrect."
	UserNotVerified         = "User is not verified. Please verify your OTP."
	OTPRequired             = "OTP is required"
	OTPFormatInvalid        = "OTP Formate is invlaid"
	OTPVerified             = "OTP verified successfully"
	OTPInvalid              = "Invalid or expired OTP"
	OTPExpired              = "OTP has expired. Please request a new one."
	OTPSentSuccess          = "OTP sent successfully"
	OTPLimitReached         = "You’ve reached the OTP limit. Please try again after 24 hours."
	OTPVerificationError    = "OTP verification error. Please try again."
	EmailOTPError           = "Email OTP Error"
	PasswordsDoNotMatch     = "Passwords do not match"
	PasswordResetSuccess    = "Password reset successfully"
	PasswordResetError      = "Reset Password Error"
	InternalServerError     = "Internal server error"
)

// Country
const (
	CountryCreateSuccess    = "Country created successfully"
	CountryCreateError      = "Error creating country"
	CountryAlreadyExists    = "Country already exists"
	CountryNameRequired     = "Country name is required"
	CountryNameInvalid      = "Country name must contain only letters and spaces"
	CountryIDRequired       = "Country ID is required"
	CountryIDInvalid        = "Invalid Country ID format"
	CountryIDNotFound       = "Country ID not found"
	CountryFetchSuccess     = "Country retrieved successfully"
	CountryFetchError       = "Error fetching country"
	CountryListFetchSuccess = "Country List retrieved successfully"
	CountryListFetchError   = "Error fetching country list"
	CountryEditSuccess      = "Country edited successfully"
	CountryEditError        = "Error editing country"
	CountryDeleteSuccess    = "Country deleted successfully"
	CountryDeleteError      = "Error deleting country"
)

// State
const (
	StateCreateSuccess    = "State created successfully."
	StateCreateError      = "Error occurred while creating the state."
	StateNameRequired     = "State name is required."
	StateNameInvalid      = "State name must contain only alphabetic characters and spaces."
	StateAlreadyExists    = "State name already exists."
	StateIDRequired       = "State ID is required"
	StateIDInvalid        = "Invalid State ID format"
	StateIDNotFound       = "State ID not found."
	CountryIDAssocRequired = "Country ID is required to associate the state."
	StateFetchSuccess     = "State fetched successfully."
	StateFetchError       = "Error occurred while fetching state."
	StateListFetchSuccess = "State List retrieved successfully"
	StateListFetchError   = "Error fetching State"
	StateEditSuccess      = "State updated successfully."
	StateEditError        = "Error occurred while updating the state."
	StateDeleteSuccess    = "State deleted successfully."
	StateDeleteError      = "Error occurred while deleting the state."
)

// City
const (
	CityCreateSuccess    = "City created successfully."
	CityCreateError      = "Error occurred while creating the city."
	CityNameRequired     = "City name is required."
	CityNameInvalid      = "City name must contain only alphabetic characters and spaces."
	CityAlreadyExists    = "City name already exists."
	CityIDRequired       = "City ID is required"
	CityIDInvalid        = "Invalid City ID format"
	CityIDNotFound       = "City ID not found."
	StateIDAssocRequired = "State ID is required to associate the city."
	CityFetchSuccess     = "Cities fetched successfully."
	CityFetchError       = "Error occurred while fetching city(ies)."
	CityListFetchSuccess = "City List retrieved successfully"
	CityListFetchError   = "Error fetching City"
	CityEditSuccess      = "City updated successfully."
	CityEditError        = "Error occurred while updating the city."
	CityDeleteSuccess    = "City deleted successfully."
	CityDeleteError      = "Error occurred while deleting the city."
)
