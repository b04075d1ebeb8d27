package i18n

// Message keys shown to administrators.
const (
	ConfigUpdated        = "CONFIG_UPDATED"
	FormInvalid          = "FORM_INVALID"
	InvalidColor         = "ACP_PWA_INVALID_COLOR"
	ImgUploadSuccess     = "ACP_PWA_IMG_UPLOAD_SUCCESS"
	ImgDelete            = "ACP_PWA_IMG_DELETE"
	ImgDeleted           = "ACP_PWA_IMG_DELETED"
	ImgDeleteError       = "ACP_PWA_IMG_DELETE_ERROR"
	ImgDeletePathErr     = "ACP_PWA_IMG_DELETE_PATH_ERR"
	ImgDeleteNameErr     = "ACP_PWA_IMG_DELETE_NAME_ERR"
	ImgResynced          = "ACP_PWA_IMG_RESYNCED"
	ImgResyncSkipped     = "ACP_PWA_IMG_RESYNC_SKIPPED"
	StorageFileNoExist   = "STORAGE_FILE_NO_EXIST"
	StorageError         = "STORAGE_ERROR"
	EmptyFileUpload      = "EMPTY_FILEUPLOAD"
	DisallowedExtension  = "DISALLOWED_EXTENSION"
	DisallowedContent    = "DISALLOWED_CONTENT"
	NoUploadFormFound    = "NO_UPLOAD_FORM_FOUND"
	FileMoveUnsuccessful = "FILE_MOVE_UNSUCCESSFUL"
	UploadFileExists     = "ACP_PWA_IMG_EXISTS"
	LoginError           = "LOGIN_ERROR_PASSWORD"
	NoAuthOperation      = "NO_AUTH_OPERATION"
	GeneralError         = "GENERAL_ERROR"
)

var english = map[string]string{
	ConfigUpdated:        "Configuration updated successfully.",
	FormInvalid:          "The submitted form was invalid. Try submitting again.",
	InvalidColor:         "The color code “%s” is not a valid hex code.",
	ImgUploadSuccess:     "Image uploaded successfully.",
	ImgDelete:            "Are you sure you want to delete this image?",
	ImgDeleted:           "“%s” has been deleted.",
	ImgDeleteError:       "The image could not be deleted. %s",
	ImgDeletePathErr:     "No image was specified.",
	ImgDeleteNameErr:     "The image name contains invalid characters.",
	ImgResynced:          "Web application icons have been resynchronised.",
	ImgResyncSkipped:     "%d file(s) could not be read and were skipped.",
	StorageFileNoExist:   "The file does not exist.",
	StorageError:         "The storage backend rejected the operation.",
	EmptyFileUpload:      "The uploaded file is empty.",
	DisallowedExtension:  "The extension %s is not allowed.",
	DisallowedContent:    "The upload was rejected because the uploaded file was identified as a possible attack vector.",
	NoUploadFormFound:    "Upload initiated but no valid file upload form found.",
	FileMoveUnsuccessful: "Unable to move file.",
	UploadFileExists:     "An image named “%s” already exists. Delete it before uploading a replacement.",
	LoginError:           "You have specified an incorrect password.",
	NoAuthOperation:      "You do not have the required permissions to complete this operation.",
	GeneralError:         "General Error",
}

var german = map[string]string{
	ConfigUpdated:      "Die Konfiguration wurde erfolgreich aktualisiert.",
	FormInvalid:        "Das übermittelte Formular war ungültig. Bitte erneut absenden.",
	InvalidColor:       "Der Farbcode „%s“ ist kein gültiger Hex-Code.",
	ImgUploadSuccess:   "Das Bild wurde erfolgreich hochgeladen.",
	ImgDelete:          "Bist du sicher, dass du dieses Bild löschen möchtest?",
	ImgDeleted:         "„%s“ wurde gelöscht.",
	ImgDeleteError:     "Das Bild konnte nicht gelöscht werden. %s",
	ImgDeletePathErr:   "Es wurde kein Bild angegeben.",
	ImgDeleteNameErr:   "Der Bildname enthält ungültige Zeichen.",
	ImgResynced:        "Die Web-App-Symbole wurden neu synchronisiert.",
	StorageFileNoExist: "Die Datei existiert nicht.",
	EmptyFileUpload:    "Die hochgeladene Datei ist leer.",
	UploadFileExists:   "Ein Bild namens „%s“ existiert bereits. Lösche es, bevor du einen Ersatz hochlädst.",
}
