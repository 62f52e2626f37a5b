// Package response is the single JSON envelope every endpoint answers with.
// User-facing error strings are Thai, mirroring the client's locale.
package response

import (
	"encoding/json"
	"net/http"
)

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Localized user-facing messages.
const (
	MsgOK             = "สำเร็จ"
	MsgLoginOK        = "เข้าสู่ระบบสำเร็จ"
	MsgSaved          = "บันทึกข้อมูลสำเร็จ"
	MsgUpdated        = "อัปเดตข้อมูลสำเร็จ"
	MsgDeleted        = "ลบข้อมูลสำเร็จ"
	MsgUploaded       = "อัปโหลดรูปภาพสำเร็จ"
	ErrServer         = "เกิดข้อผิดพลาดในระบบ กรุณาลองใหม่อีกครั้ง"
	ErrTokenRequired  = "ไม่พบ token หรือ token ไม่ถูกต้อง"
	ErrTokenInvalid   = "Token ไม่ถูกต้อง"
	ErrTokenExpired   = "Token หมดอายุ"
	ErrUserNotFound   = "ไม่พบผู้ใช้งาน"
	ErrLineVerify     = "การยืนยันตัวตนกับ LINE ล้มเหลว"
	ErrRecordNotFound = "ไม่พบข้อมูลการวิ่ง"
	ErrForbidden      = "ไม่มีสิทธิ์เข้าถึงข้อมูลนี้"
	ErrImagesOnly     = "เฉพาะไฟล์รูปภาพเท่านั้น"
	ErrFileRequired   = "กรุณาอัปโหลดไฟล์"
	ErrFileTooLarge   = "ไฟล์มีขนาดใหญ่เกินไป (สูงสุด 5 MB)"
)

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

func Success(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, Envelope{Success: true, Message: message, Data: data})
}

func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Success: false, Error: message})
}

func ServerError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, ErrServer)
}
