package config

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/lib/pq"
	"github.com/skip2/go-qrcode"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/store/sqlstore"
)

var (
	meowWhatsapp *whatsmeow.Client
	qrCodeSent   bool
	qrMu         sync.Mutex
)

// InitSender connects the WhatsApp session and the SMTP emailer used for
// the QR login flow. When no session exists yet the login QR code is
// rendered to a PNG and mailed to the configured admin address.
func InitSender() (*whatsmeow.Client, smtp.Auth, *string, *string, error) {
	emailSender, err := requireEnv("EMAIL_SENDER")
	if err != nil {
		return nil, nil, nil, nil, err
	}

	emailPassword, err := requireEnv("EMAIL_SENDER_PASSWORD")
	if err != nil {
		return nil, nil, nil, nil, err
	}

	smtpHost, err := requireEnv("SMTP_HOST")
	if err != nil {
		return nil, nil, nil, nil, err
	}

	smtpPort, err := requireEnv("SMTP_PORT")
	if err != nil {
		return nil, nil, nil, nil, err
	}

	smtpAuth := smtp.PlainAuth("", *emailSender, *emailPassword, *smtpHost)
	smtpAddr := fmt.Sprintf("%s:%s", *smtpHost, *smtpPort)

	fmt.Println("SMTP initialized")

	dbms, err := requireEnv("DBMS")
	if err != nil {
		return nil, nil, nil, nil, err
	}

	user, err := requireEnv("DB_USER")
	if err != nil {
		return nil, nil, nil, nil, err
	}

	pass, err := requireEnv("DB_PASSWORD")
	if err != nil {
		return nil, nil, nil, nil, err
	}

	dbname, err := requireEnv("DB_DATABASE")
	if err != nil {
		return nil, nil, nil, nil, err
	}

	meowAddress := fmt.Sprintf("user=%s password=%s dbname=%s sslmode=disable", *user, *pass, *dbname)

	container, err := sqlstore.New(context.Background(), *dbms, meowAddress, nil)
	if err != nil {
		panic(err)
	}

	deviceStore, err := container.GetFirstDevice(context.Background())
	if err != nil {
		panic(err)
	}
	meowWhatsapp = whatsmeow.NewClient(deviceStore, nil)

	if meowWhatsapp.Store.ID == nil {
		qrChan, _ := meowWhatsapp.GetQRChannel(context.Background())
		err = meowWhatsapp.Connect()
		if err != nil {
			panic(err)
		}

		for evt := range qrChan {
			if evt.Event == "code" {
				qrMu.Lock()
				if !qrCodeSent {
					fmt.Println("")
					fmt.Println("IMPORTANT no WhatsApp session was found !!")
					fmt.Println("Need admin to scan the QR code for the server to run properly!")
					fmt.Println("Loading...")

					err := generateQRCode(evt.Code, "qrcode.png")
					if err != nil {
						panic(err)
					}

					err = SendQRtoEmail(smtpAddr, &smtpAuth, *emailSender, "qrcode.png")
					if err != nil {
						panic(err)
					}
					fmt.Printf("Image of QR Code is sent to %s, go ahead and scan them :)\n", *emailSender)
					fmt.Println("")

					qrCodeSent = true
				}
				qrMu.Unlock()
			} else {
				fmt.Println("Login event:", evt.Event)
			}
		}
	} else {
		err = meowWhatsapp.Connect()
		if err != nil {
			panic(err)
		}
		fmt.Println("WhatsMeow initialized")
	}

	return meowWhatsapp, smtpAuth, &smtpAddr, emailSender, nil
}

func requireEnv(key string) (*string, error) {
	v := os.Getenv(key)
	if v == "" {
		return nil, fmt.Errorf("%s is missing, value: %s", key, v)
	}
	return &v, nil
}

func generateQRCode(data, filePath string) error {
	err := qrcode.WriteFile(data, qrcode.Medium, 256, filePath)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %v", err)
	}
	return nil
}

func SendQRtoEmail(smtpAddr string, smtpAuth *smtp.Auth, emailSender string, qrFilePath string) error {
	subject := "Subject: School Assistant QR Code Login\n"
	body := "Please find the attached QR code for login.\n\n"

	fileData, err := os.ReadFile(qrFilePath)
	if err != nil {
		return fmt.Errorf("failed to read QR code file: %v", err)
	}

	fileName := filepath.Base(qrFilePath)
	boundary := "my-boundary-12345"

	msg := []byte("From: " + emailSender + "\n" +
		"To: " + emailSender + "\n" +
		subject +
		"MIME-Version: 1.0\n" +
		"Content-Type: multipart/mixed; boundary=" + boundary + "\n\n" +
		"--" + boundary + "\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\n\n" +
		body + "\n\n" +
		"--" + boundary + "\n" +
		"Content-Type: image/png\n" +
		"Content-Disposition: attachment; filename=\"" + fileName + "\"\n" +
		"Content-Transfer-Encoding: base64\n\n")

	msg = append(msg, []byte(base64.StdEncoding.EncodeToString(fileData))...)
	msg = append(msg, []byte("\n--"+boundary+"--")...)

	err = smtp.SendMail(smtpAddr, *smtpAuth, emailSender, []string{emailSender}, msg)
	if err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
